package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/middleware"
	"github.com/murmur-app/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	socialGraphService *services.SocialGraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(socialGraphService *services.SocialGraphService) *FollowHandler {
	return &FollowHandler{socialGraphService: socialGraphService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.socialGraphService.Follow(viewerID, uint(targetID)); err != nil {
		return toHTTPError(err, "User not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully followed user"})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.socialGraphService.Unfollow(viewerID, uint(targetID)); err != nil {
		return toHTTPError(err, "Follow relationship not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully unfollowed user"})
}
