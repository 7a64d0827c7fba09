package handlers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) ChecklistReport(c *gin.Context) {
	file, err := h.Services.Reports.Checklist(c.Request.Context(), c.Param("checklistId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(file.Path, file.FileName)
}

func (h *Handler) NonConformityReport(c *gin.Context) {
	file, err := h.Services.Reports.NonConformities(c.Request.Context(), c.Param("checklistId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(file.Path, file.FileName)
}
