package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/murmur-app/backend/internal/middleware"
	"github.com/murmur-app/backend/internal/services"
)

// TimelineHandler handles HTTP requests for the viewer's timeline
type TimelineHandler struct {
	timelineService *services.TimelineService
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(timelineService *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

// RegisterTimelineRoutes registers timeline-related routes
func (h *TimelineHandler) RegisterTimelineRoutes(g *echo.Group) {
	g.GET("/murmurs", h.GetTimeline)
	g.GET("/murmurs/:id", h.GetMurmur)
}

// GetTimeline returns one page of murmurs by the viewer and the users
// they follow, newest first
func (h *TimelineHandler) GetTimeline(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	timeline, err := h.timelineService.GetTimeline(viewerID, page, limit)
	if err != nil {
		return toHTTPError(err, "Timeline not found")
	}

	return c.JSON(http.StatusOK, timeline)
}

// GetMurmur returns a single murmur with the viewer's like state
func (h *TimelineHandler) GetMurmur(c echo.Context) error {
	viewerID := middleware.ViewerID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid murmur ID")
	}

	murmur, err := h.timelineService.GetMurmur(uint(id), viewerID)
	if err != nil {
		return toHTTPError(err, "Murmur not found")
	}

	return c.JSON(http.StatusOK, murmur)
}
