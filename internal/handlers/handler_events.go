package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/landed_pricing_app/internal/events"
	"github.com/SscSPs/landed_pricing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventsHandler streams authorization lifecycle events as server-sent events.
type eventsHandler struct {
	source events.Source
}

// registerEventRoutes mounts the stream under /authorizations. source may be nil.
func registerEventRoutes(rg *gin.RouterGroup, source events.Source) {
	h := &eventsHandler{source: source}
	rg.GET("/authorizations/events", h.stream)
}

// stream godoc
// @Summary Stream authorization events
// @Description Server-sent events for every created, approved or rejected authorization request
// @Tags authorizations
// @Produce  text/event-stream
// @Success 200 {object} events.Event
// @Failure 503 {object} map[string]string "No event source configured"
// @Security BearerAuth
// @Router /authorizations/events [get]
func (h *eventsHandler) stream(c *gin.Context) {
	if h.source == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authorization events are not available"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	ch, release := h.source.Stream(ctx)
	defer release()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	logger.Info("Authorization event stream opened")
	c.Stream(func(io.Writer) bool {
		select {
		case evt, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(evt.Type, evt)
			return true
		case <-ctx.Done():
			return false
		}
	})
	logger.Info("Authorization event stream closed", slog.String("reason", closeReason(ctx.Err())))
}

func closeReason(err error) string {
	if err == nil {
		return "source closed"
	}
	return err.Error()
}
