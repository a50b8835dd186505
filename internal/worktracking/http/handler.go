package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/constructtrack/constructtrack-backend/internal/auth"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/service"
)

// Generator produces payloads for the generate/* endpoints.
type Generator interface {
	SuggestItems(ctx context.Context, image string) ([]domain.ItemProposal, error)
	SuggestSubTasks(ctx context.Context, name string, category domain.WorkCategory) ([]string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	DesignIdeas(ctx context.Context, image, style string) (string, error)
}

type Handler struct {
	svc *service.WorkspaceService
	gen Generator
}

func NewHandler(svc *service.WorkspaceService, gen Generator) *Handler {
	return &Handler{svc: svc, gen: gen}
}

func owner(c *gin.Context) string {
	if id := auth.OwnerID(c); id != "" {
		return id
	}
	return auth.DemoOwner
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

// writeError maps service errors onto status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrAreaNotFound),
		errors.Is(err, domain.ErrWorkItemNotFound),
		errors.Is(err, domain.ErrSubWorkNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPayload):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		service.NewLogger(c.Request.Context()).LogErrorf("http", "path=%s error=%v", c.FullPath(), err)
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func upstreamError(c *gin.Context, op string, err error) {
	service.NewLogger(c.Request.Context()).LogErrorf(op, "owner=%s error=%v", owner(c), err)
	c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "generator failed: " + err.Error()})
}
