package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

type nameBody struct {
	Name string `json:"name"`
}

func bindName(c *gin.Context) (string, bool) {
	var body nameBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		badRequest(c, "name is required")
		return "", false
	}
	return strings.TrimSpace(body.Name), true
}

func (h *Handler) CreateProject(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}
	p, err := h.svc.AddProject(c.Request.Context(), owner(c), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) RenameProject(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}
	p, err := h.svc.RenameProject(c.Request.Context(), owner(c), c.Param("projectId"), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.RemoveProject(c.Request.Context(), owner(c), c.Param("projectId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ProjectSummary(c *gin.Context) {
	s, err := h.svc.ProjectSummary(c.Request.Context(), owner(c), c.Param("projectId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": s})
}

func (h *Handler) CreateArea(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}
	a, err := h.svc.AddArea(c.Request.Context(), owner(c), c.Param("projectId"), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "area": a})
}

func (h *Handler) UpdateArea(c *gin.Context) {
	var patch domain.AreaPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		badRequest(c, "name must not be blank")
		return
	}
	a, err := h.svc.UpdateArea(c.Request.Context(), owner(c), c.Param("projectId"), c.Param("areaId"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "area": a})
}

func (h *Handler) CreateWorkItem(c *gin.Context) {
	var item domain.WorkItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid work item")
		return
	}
	if strings.TrimSpace(item.Name) == "" {
		badRequest(c, "name is required")
		return
	}
	w, err := h.svc.AddWorkItem(c.Request.Context(), owner(c), c.Param("projectId"), c.Param("areaId"), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": w})
}

// CreateWorkItems folds a list of {name, category} proposals into the area.
// Malformed entries are completed with defaults rather than rejected.
func (h *Handler) CreateWorkItems(c *gin.Context) {
	var body struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "items must be a JSON array")
		return
	}
	items, err := h.svc.AddWorkItems(c.Request.Context(), owner(c), c.Param("projectId"), c.Param("areaId"),
		domain.ParseProposals(body.Items))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "items": items})
}

func (h *Handler) UpdateWorkItem(c *gin.Context) {
	var item domain.WorkItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "invalid work item")
		return
	}
	item.ID = c.Param("itemId")
	w, err := h.svc.UpdateWorkItem(c.Request.Context(), owner(c), c.Param("projectId"), c.Param("areaId"), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": w})
}

func (h *Handler) DeleteWorkItem(c *gin.Context) {
	err := h.svc.RemoveWorkItem(c.Request.Context(), owner(c), c.Param("projectId"), c.Param("areaId"), c.Param("itemId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetColorImage stores an uploaded swatch reference (typically a data URL)
// as the item's color.
func (h *Handler) SetColorImage(c *gin.Context) {
	var body struct {
		Ref      string `json:"ref"`
		FileName string `json:"fileName"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Ref == "" {
		badRequest(c, "ref is required")
		return
	}
	w, err := h.svc.SetWorkItemColorImage(c.Request.Context(), owner(c),
		c.Param("projectId"), c.Param("areaId"), c.Param("itemId"), body.Ref, body.FileName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": w})
}

func (h *Handler) CreateSubWorks(c *gin.Context) {
	var body struct {
		Names []json.RawMessage `json:"names"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "names must be a JSON array")
		return
	}
	subs, err := h.svc.AddSubWorks(c.Request.Context(), owner(c),
		c.Param("projectId"), c.Param("areaId"), c.Param("itemId"), domain.ParseNames(body.Names))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "subWorks": subs})
}

func (h *Handler) ToggleSubWork(c *gin.Context) {
	w, err := h.svc.ToggleSubWork(c.Request.Context(), owner(c),
		c.Param("projectId"), c.Param("areaId"), c.Param("itemId"), c.Param("subId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": w})
}

func (h *Handler) DeleteSubWork(c *gin.Context) {
	err := h.svc.RemoveSubWork(c.Request.Context(), owner(c),
		c.Param("projectId"), c.Param("areaId"), c.Param("itemId"), c.Param("subId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
