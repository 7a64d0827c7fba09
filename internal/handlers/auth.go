package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"audit-checklist/internal/apperr"
	"audit-checklist/internal/database"
	"audit-checklist/internal/middleware"
	"audit-checklist/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, email and password are required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		badRequest(c, "invalid email")
		return
	}
	if len(req.Password) < 6 {
		badRequest(c, "password must be at least 6 characters long")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}
	if count > 0 {
		respondError(c, apperr.New(apperr.KindConflict, "user already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			respondError(c, apperr.New(apperr.KindConflict, "user already exists"))
			return
		}
		respondError(c, err)
		return
	}

	database.CreateAuditLog(h.DB, user.ID, "user", user.ID, "create", "Registered "+database.MaskEmail(user.Email))

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	invalid := apperr.New(apperr.KindUnauthorized, "invalid credentials")

	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.DB.Where("email = ?", email).Take(&user).Error; err != nil {
		respondError(c, invalid)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, invalid)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, apperr.New(apperr.KindUnauthorized, "authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
