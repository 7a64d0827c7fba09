package handlers

import (
	"net/http"

	"audit-checklist/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNonConformities(c *gin.Context) {
	list, err := h.Services.NonConformities.ListForChecklist(c.Request.Context(), c.Param("checklistId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonConformities": list})
}

func (h *Handler) GetNonConformity(c *gin.Context) {
	nc, err := h.Services.NonConformities.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonConformity": nc})
}

func (h *Handler) UpdateNonConformity(c *gin.Context) {
	var req services.NCUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	nc, err := h.Services.NonConformities.Update(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonConformity": nc})
}

type correctiveActionRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *Handler) AddCorrectiveAction(c *gin.Context) {
	var req correctiveActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "action is required")
		return
	}

	action, err := h.Services.NonConformities.AddCorrectiveAction(c.Request.Context(), c.Param("id"), req.Action, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"correctiveAction": action})
}

type resolveRequest struct {
	Conclusion string `json:"conclusion" binding:"required"`
}

func (h *Handler) ResolveNonConformity(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "conclusion is required")
		return
	}

	nc, err := h.Services.NonConformities.Resolve(c.Request.Context(), c.Param("id"), req.Conclusion, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonConformity": nc})
}
