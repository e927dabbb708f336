package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"compliance-llm/internal/service"
)

// TimelineHandler mantiene dependencias para endpoints de línea de tiempo.
type TimelineHandler struct {
	logger       *zap.Logger
	timelineServ *service.TimelineService
}

func NewTimelineHandler(logger *zap.Logger, timelineServ *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{logger: logger, timelineServ: timelineServ}
}

// AddEvent maneja POST /api/timeline/:application_id/events.
func (h *TimelineHandler) AddEvent(c *gin.Context) {
	var req struct {
		EventType string         `json:"event_type" binding:"required"`
		EventData map[string]any `json:"event_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	event, err := h.timelineServ.AddEvent(c.Request.Context(), c.Param("application_id"), req.EventType, req.EventData)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEventType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("add event failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// Timeline maneja GET /api/timeline/:application_id.
func (h *TimelineHandler) Timeline(c *gin.Context) {
	events, err := h.timelineServ.Timeline(c.Request.Context(), c.Param("application_id"))
	if err != nil {
		h.logger.Error("get timeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get timeline"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// History maneja GET /api/timeline/:application_id/history.
func (h *TimelineHandler) History(c *gin.Context) {
	events, err := h.timelineServ.ComplianceHistory(c.Request.Context(), c.Param("application_id"))
	if err != nil {
		h.logger.Error("get history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Trend maneja GET /api/timeline/:application_id/trend.
func (h *TimelineHandler) Trend(c *gin.Context) {
	trend, err := h.timelineServ.ComplianceTrend(c.Request.Context(), c.Param("application_id"))
	if err != nil {
		h.logger.Error("get trend failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get trend"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
