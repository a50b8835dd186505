package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// GenerateItems asks the generator for work items seen in an image. With
// preview set the proposals are returned without touching the area, so the
// client can pick a subset and post it to items/bulk.
func (h *Handler) GenerateItems(c *gin.Context) {
	var body struct {
		Image       string `json:"image"`
		AttachImage bool   `json:"attachImage"`
		Preview     bool   `json:"preview"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Image == "" {
		badRequest(c, "image is required")
		return
	}
	ctx := c.Request.Context()
	pid, aid := c.Param("projectId"), c.Param("areaId")
	if _, err := h.svc.Area(ctx, owner(c), pid, aid); err != nil {
		writeError(c, err)
		return
	}

	proposals, err := h.gen.SuggestItems(ctx, body.Image)
	if err != nil {
		upstreamError(c, "generate_items", err)
		return
	}
	if body.Preview {
		c.JSON(http.StatusOK, gin.H{"ok": true, "proposals": proposals})
		return
	}

	if body.AttachImage {
		if _, err := h.svc.UpdateArea(ctx, owner(c), pid, aid, domain.AreaPatch{ImageURL: &body.Image}); err != nil {
			writeError(c, err)
			return
		}
	}
	items, err := h.svc.AddWorkItems(ctx, owner(c), pid, aid, proposals)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "items": items})
}

func (h *Handler) GenerateAreaImage(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Prompt) == "" {
		badRequest(c, "prompt is required")
		return
	}
	ctx := c.Request.Context()
	pid, aid := c.Param("projectId"), c.Param("areaId")
	if _, err := h.svc.Area(ctx, owner(c), pid, aid); err != nil {
		writeError(c, err)
		return
	}

	ref, err := h.gen.GenerateImage(ctx, strings.TrimSpace(body.Prompt))
	if err != nil {
		upstreamError(c, "generate_image", err)
		return
	}
	a, err := h.svc.UpdateArea(ctx, owner(c), pid, aid, domain.AreaPatch{ImageURL: &ref})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "area": a})
}

// GenerateDesignIdeas returns markdown restyling ideas. The image defaults
// to the area's own picture.
func (h *Handler) GenerateDesignIdeas(c *gin.Context) {
	var body struct {
		Image string `json:"image"`
		Style string `json:"style"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx := c.Request.Context()
	a, err := h.svc.Area(ctx, owner(c), c.Param("projectId"), c.Param("areaId"))
	if err != nil {
		writeError(c, err)
		return
	}
	image := body.Image
	if image == "" {
		image = a.ImageURL
	}
	if image == "" {
		badRequest(c, "image is required when the area has none")
		return
	}

	ideas, err := h.gen.DesignIdeas(ctx, image, body.Style)
	if err != nil {
		upstreamError(c, "generate_ideas", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "ideas": ideas})
}

func (h *Handler) GenerateSubWorks(c *gin.Context) {
	ctx := c.Request.Context()
	pid, aid, iid := c.Param("projectId"), c.Param("areaId"), c.Param("itemId")
	w, err := h.svc.WorkItem(ctx, owner(c), pid, aid, iid)
	if err != nil {
		writeError(c, err)
		return
	}

	names, err := h.gen.SuggestSubTasks(ctx, w.Name, w.Category)
	if err != nil {
		upstreamError(c, "generate_subworks", err)
		return
	}
	subs, err := h.svc.AddSubWorks(ctx, owner(c), pid, aid, iid, names)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "subWorks": subs})
}
