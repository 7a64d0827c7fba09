package handlers

import (
	"log"
	"net/http"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/models"
	"audit-checklist/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB             *gorm.DB
	Services       *services.Services
	MaxUploadBytes int64
}

func New(db *gorm.DB, svc *services.Services, maxUploadBytes int64) *Handler {
	return &Handler{DB: db, Services: svc, MaxUploadBytes: maxUploadBytes}
}

// causes of internal errors are only logged
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"kind":    kind,
			"message": apperr.Message(err),
		},
	})
}

func badRequest(c *gin.Context, format string, args ...any) {
	respondError(c, apperr.Validation(format, args...))
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	switch u := v.(type) {
	case models.User:
		return u, true
	case *models.User:
		return *u, true
	}
	return models.User{}, false
}

func currentUserID(c *gin.Context) string {
	u, _ := currentUser(c)
	return u.ID
}
