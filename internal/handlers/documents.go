package handlers

import (
	"errors"
	"net/http"

	"audit-checklist/internal/apperr"

	"github.com/gin-gonic/gin"
)

// multipart field "document"
func (h *Handler) UploadDocument(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	file, err := c.FormFile("document")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(c, "file exceeds the %d MB limit", h.MaxUploadBytes/(1024*1024))
			return
		}
		badRequest(c, "no file uploaded")
		return
	}
	if h.MaxUploadBytes > 0 && file.Size > h.MaxUploadBytes {
		badRequest(c, "file exceeds the %d MB limit", h.MaxUploadBytes/(1024*1024))
		return
	}

	path, err := h.Services.Documents.StoragePath(file.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := c.SaveUploadedFile(file, path); err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternal, err, "failed to store file"))
		return
	}

	doc, err := h.Services.Documents.Create(c.Request.Context(), currentUserID(c), file.Filename, path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.Services.Documents.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h *Handler) GetDocument(c *gin.Context) {
	doc, err := h.Services.Documents.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	if _, err := h.Services.Documents.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document removed"})
}
