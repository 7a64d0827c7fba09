package server

import (
	"net/http"

	"audit-checklist/internal/handlers"
	"audit-checklist/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type Options struct {
	SessionSecret string
	// AuthLimiter throttles register and login; nil disables it.
	AuthLimiter *middleware.RateLimiter
}

func NewRouter(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("audit_session", store))
	r.Use(middleware.InjectUser(h.DB))

	api := r.Group("/api")

	// AUTH
	authGroup := api.Group("/auth")
	authGroup.POST("/register", opts.AuthLimiter.Middleware(), h.Register)
	authGroup.POST("/login", opts.AuthLimiter.Middleware(), h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", middleware.RequireAuth(), h.Me)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth())

	// DOCUMENTS
	auth.POST("/documents", h.UploadDocument)
	auth.GET("/documents", h.ListDocuments)
	auth.GET("/documents/:id", h.GetDocument)
	auth.DELETE("/documents/:id", h.DeleteDocument)

	// CHECKLISTS
	auth.GET("/checklists/standards", h.ListStandards)
	auth.POST("/checklists/document/:documentId", h.CreateChecklist)
	auth.GET("/checklists", h.ListChecklists)
	auth.GET("/checklists/:id", h.GetChecklist)

	// ANSWERS
	auth.POST("/answers/checklist/:checklistId", h.SyncAnswers)
	auth.GET("/answers/checklist/:checklistId", h.ListAnswers)

	// NON-CONFORMITIES
	auth.GET("/nonconformities/checklist/:checklistId", h.ListNonConformities)
	auth.GET("/nonconformities/:id", h.GetNonConformity)
	auth.PUT("/nonconformities/:id", h.UpdateNonConformity)
	auth.POST("/nonconformities/:id/actions", h.AddCorrectiveAction)
	auth.PUT("/nonconformities/:id/resolve", h.ResolveNonConformity)

	// REPORTS
	auth.GET("/reports/checklist/:checklistId", h.ChecklistReport)
	auth.GET("/reports/nonconformities/:checklistId", h.NonConformityReport)

	// AUDIT
	auth.GET("/audit", h.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
