package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/service"
)

// StreamSaves pushes a Server-Sent Event each time the owner's snapshot is
// saved, so other open clients know to reload.
func (h *Handler) StreamSaves(c *gin.Context) {
	ctx := c.Request.Context()
	saves, err := h.svc.WatchSaves(ctx, owner(c))
	if errors.Is(err, service.ErrWatchUnsupported) {
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}
	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case at, ok := <-saves:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "event: saved\ndata: {\"savedAt\":%q}\n\n", at.Format(time.RFC3339Nano))
			flusher.Flush()
		}
	}
}
