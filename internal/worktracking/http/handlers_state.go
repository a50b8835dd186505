package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/quantity"
)

func (h *Handler) GetState(c *gin.Context) {
	ps, err := h.svc.State(c.Request.Context(), owner(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": ps, "dirty": h.svc.IsDirty(owner(c))})
}

// ReplaceState accepts the persisted layout: a bare JSON array of projects.
func (h *Handler) ReplaceState(c *gin.Context) {
	var projects []domain.Project
	if err := c.ShouldBindJSON(&projects); err != nil {
		badRequest(c, "body must be a JSON array of projects")
		return
	}
	ps, fixed := h.svc.Replace(c.Request.Context(), owner(c), projects)
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": ps, "reconciled": fixed})
}

func (h *Handler) SaveState(c *gin.Context) {
	snap, err := h.svc.Save(c.Request.Context(), owner(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"backend": h.svc.Backend(),
		"version": snap.Version,
		"savedAt": snap.SavedAt,
	})
}

func (h *Handler) LoadState(c *gin.Context) {
	ps, err := h.svc.Reload(c.Request.Context(), owner(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": ps})
}

// PreviewQuantity runs the quantity engine on query parameters without
// touching any workspace.
func (h *Handler) PreviewQuantity(c *gin.Context) {
	in := quantity.Inputs{UnitType: domain.UnitType(c.Query("unitType"))}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"length", &in.Length},
		{"width", &in.Width},
		{"depth", &in.Depth},
		{"units", &in.Units},
	}
	for _, f := range fields {
		v, ok, err := queryFloat(c, f.name)
		if err != nil {
			badRequest(c, f.name+" must be a number")
			return
		}
		if ok {
			*f.dst = v
		}
	}
	if v, ok, err := queryFloat(c, "unitMultiplier"); err != nil {
		badRequest(c, "unitMultiplier must be a number")
		return
	} else if ok {
		in.UnitMultiplier = &v
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"unitType":  in.UnitType,
		"known":     in.UnitType.Valid(),
		"quantity":  quantity.Compute(in),
		"unitTypes": domain.UnitTypes,
	})
}

func queryFloat(c *gin.Context, key string) (float64, bool, error) {
	s, ok := c.GetQuery(key)
	if !ok || s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
