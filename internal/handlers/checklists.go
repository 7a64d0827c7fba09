package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListStandards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"standards": h.Services.Checklists.Standards()})
}

type createChecklistRequest struct {
	Standard string `json:"standard" binding:"required"`
}

func (h *Handler) CreateChecklist(c *gin.Context) {
	var req createChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "standard is required")
		return
	}

	checklist, err := h.Services.Checklists.Create(c.Request.Context(), c.Param("documentId"), req.Standard, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"checklist": checklist})
}

func (h *Handler) ListChecklists(c *gin.Context) {
	list, err := h.Services.Checklists.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checklists": list})
}

func (h *Handler) GetChecklist(c *gin.Context) {
	checklist, err := h.Services.Checklists.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checklist": checklist})
}
