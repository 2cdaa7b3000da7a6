package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/middleware"
	"github.com/murmur-app/backend/internal/services"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userService   *services.UserService
	murmurService *services.MurmurService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, murmurService *services.MurmurService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		murmurService: murmurService,
	}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetCurrentUser)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/murmurs", h.GetUserMurmurs)
}

// GetCurrentUser returns the authenticated user's own profile
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	profile, err := h.userService.GetProfile(viewerID, viewerID)
	if err != nil {
		return toHTTPError(err, "User not found")
	}

	return c.JSON(http.StatusOK, profile)
}

// GetUser returns a user's profile as seen by the viewer
func (h *UserHandler) GetUser(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	profile, err := h.userService.GetProfile(uint(id), viewerID)
	if err != nil {
		return toHTTPError(err, "User not found")
	}

	return c.JSON(http.StatusOK, profile)
}

// GetUserMurmurs returns all of a user's murmurs, newest first
func (h *UserHandler) GetUserMurmurs(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	murmurs, err := h.murmurService.ListUserMurmurs(uint(id))
	if err != nil {
		return toHTTPError(err, "User not found")
	}

	return c.JSON(http.StatusOK, murmurs)
}
