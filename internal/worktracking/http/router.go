package http

import "github.com/gin-gonic/gin"

// Register mounts the work-tracking API on rg. The owner is read from the
// context set by auth.Gate.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/quantity", h.PreviewQuantity)

	rg.GET("/state", h.GetState)
	rg.PUT("/state", h.ReplaceState)
	rg.POST("/state/save", h.SaveState)
	rg.POST("/state/load", h.LoadState)
	rg.GET("/state/events", h.StreamSaves)

	rg.POST("/projects", h.CreateProject)
	p := rg.Group("/projects/:projectId")
	p.PATCH("", h.RenameProject)
	p.DELETE("", h.DeleteProject)
	p.GET("/summary", h.ProjectSummary)
	p.POST("/areas", h.CreateArea)

	a := p.Group("/areas/:areaId")
	a.PATCH("", h.UpdateArea)
	a.POST("/items", h.CreateWorkItem)
	a.POST("/items/bulk", h.CreateWorkItems)
	a.POST("/generate/items", h.GenerateItems)
	a.POST("/generate/image", h.GenerateAreaImage)
	a.POST("/generate/ideas", h.GenerateDesignIdeas)

	i := a.Group("/items/:itemId")
	i.PUT("", h.UpdateWorkItem)
	i.DELETE("", h.DeleteWorkItem)
	i.PUT("/color", h.SetColorImage)
	i.POST("/subworks", h.CreateSubWorks)
	i.POST("/subworks/:subId/toggle", h.ToggleSubWork)
	i.DELETE("/subworks/:subId", h.DeleteSubWork)
	i.POST("/generate/subworks", h.GenerateSubWorks)
}
