package handlers

import (
	"net/http"

	"audit-checklist/internal/services"

	"github.com/gin-gonic/gin"
)

type answerItem struct {
	QuestionID string `json:"questionId" binding:"required"`
	Response   *bool  `json:"response" binding:"required"`
}

type syncAnswersRequest struct {
	Answers []answerItem `json:"answers" binding:"required,min=1,dive"`
}

func (h *Handler) SyncAnswers(c *gin.Context) {
	var req syncAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "answers must be a non-empty list of {questionId, response}")
		return
	}

	in := make([]services.AnswerInput, len(req.Answers))
	for i, a := range req.Answers {
		in[i] = services.AnswerInput{QuestionID: a.QuestionID, Response: *a.Response}
	}

	res, err := h.Services.Answers.Sync(c.Request.Context(), c.Param("checklistId"), in, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListAnswers(c *gin.Context) {
	qs, err := h.Services.Answers.List(c.Request.Context(), c.Param("checklistId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": qs})
}
