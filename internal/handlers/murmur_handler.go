package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/middleware"
	"github.com/murmur-app/backend/internal/models"
	"github.com/murmur-app/backend/internal/services"
)

// MurmurHandler handles HTTP requests for the viewer's own murmurs
type MurmurHandler struct {
	murmurService *services.MurmurService
}

// NewMurmurHandler creates a new MurmurHandler
func NewMurmurHandler(murmurService *services.MurmurService) *MurmurHandler {
	return &MurmurHandler{murmurService: murmurService}
}

// RegisterMurmurRoutes registers routes for the viewer's own murmurs
func (h *MurmurHandler) RegisterMurmurRoutes(g *echo.Group) {
	g.POST("/me/murmurs", h.CreateMurmur)
	g.DELETE("/me/murmurs/:id", h.DeleteMurmur)
}

// CreateMurmur posts a new murmur for the authenticated user
func (h *MurmurHandler) CreateMurmur(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	var req models.CreateMurmurRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	murmur, err := h.murmurService.Create(viewerID, req.Text)
	if err != nil {
		return toHTTPError(err, "Murmur not found")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":        murmur.ID,
		"text":      murmur.Text,
		"likeCount": murmur.LikeCount,
		"userId":    murmur.UserID,
		"createdAt": murmur.CreatedAt,
	})
}

// DeleteMurmur deletes one of the authenticated user's own murmurs
func (h *MurmurHandler) DeleteMurmur(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid murmur ID")
	}

	if err := h.murmurService.Delete(uint(id), viewerID); err != nil {
		return toHTTPError(err, "Murmur not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Murmur deleted successfully"})
}
