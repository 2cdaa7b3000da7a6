package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/middleware"
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagementService *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagementService *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/murmurs/:id/like", h.LikeMurmur)
	g.DELETE("/murmurs/:id/like", h.UnlikeMurmur)
}

// LikeMurmur handles liking a murmur
func (h *LikeHandler) LikeMurmur(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid murmur ID")
	}

	murmur, err := h.engagementService.Like(uint(id), viewerID)
	if err != nil {
		return toHTTPError(err, "Murmur not found")
	}

	return c.JSON(http.StatusOK, murmurWithMessage(murmur, "Murmur liked successfully"))
}

// UnlikeMurmur handles unliking a murmur
func (h *LikeHandler) UnlikeMurmur(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid murmur ID")
	}

	murmur, err := h.engagementService.Unlike(uint(id), viewerID)
	if err != nil {
		return toHTTPError(err, "Like not found")
	}

	return c.JSON(http.StatusOK, murmurWithMessage(murmur, "Murmur unliked successfully"))
}

func murmurWithMessage(murmur *models.Murmur, message string) echo.Map {
	return echo.Map{
		"id":        murmur.ID,
		"text":      murmur.Text,
		"likeCount": murmur.LikeCount,
		"userId":    murmur.UserID,
		"createdAt": murmur.CreatedAt,
		"message":   message,
	}
}
