package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/domain"
	"github.com/deadloked8999/e-bar/internal/http/middleware"
	"github.com/deadloked8999/e-bar/internal/services"
)

// DocumentHandlers handles document upload, listing, review and the
// submission step. Reads require a valid token; upload, delete and
// submit additionally require ownership, and verify is reserved for
// reviewer roles via the policy middleware.
type DocumentHandlers struct {
	docSvc *services.DocumentService
	guard  domain.AuthorizationGuard
}

// NewDocumentHandlers creates new document handlers
func NewDocumentHandlers(docSvc *services.DocumentService, guard domain.AuthorizationGuard) *DocumentHandlers {
	return &DocumentHandlers{docSvc: docSvc, guard: guard}
}

// VerifyDocumentRequest sets the review outcome for a document
type VerifyDocumentRequest struct {
	Status string `json:"status" binding:"required"`
}

// Upload stores a document file for an establishment
func (h *DocumentHandlers) Upload(c *gin.Context) {
	rawID := c.PostForm("establishment_id")
	estID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || estID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment_id"})
		return
	}
	docType := strings.TrimSpace(c.PostForm("document_type"))
	if docType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_type is required"})
		return
	}

	if !h.authorizeOwner(c, uint(estID)) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	doc, err := h.docSvc.Upload(c.Request.Context(), uint(estID), docType, fileHeader.Filename, data)
	if err != nil {
		switch err {
		case domain.ErrFileTypeNotAllowed:
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type is not allowed"})
		case domain.ErrEstablishmentNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload document"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

// List returns all documents of an establishment
func (h *DocumentHandlers) List(c *gin.Context) {
	estID, ok := queryEstablishmentID(c)
	if !ok {
		return
	}

	docs, err := h.docSvc.List(c.Request.Context(), estID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": docs})
}

// Get returns one document by id
func (h *DocumentHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.docSvc.Get(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrDocumentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

// Stats returns per-status document counts for an establishment
func (h *DocumentHandlers) Stats(c *gin.Context) {
	estID, ok := queryEstablishmentID(c)
	if !ok {
		return
	}

	stats, err := h.docSvc.Stats(c.Request.Context(), estID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get document stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// Delete removes a document. Only the owning establishment may delete.
func (h *DocumentHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.docSvc.Get(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrDocumentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get document"})
		return
	}

	if !h.authorizeOwner(c, doc.EstablishmentID) {
		return
	}

	if err := h.docSvc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Document deleted"}})
}

// Verify sets the review status of a document. Route access is gated
// by the policy middleware.
func (h *DocumentHandlers) Verify(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req VerifyDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.docSvc.Verify(c.Request.Context(), id, req.Status)
	if err != nil {
		if err == domain.ErrDocumentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

// Submit moves an establishment to pending review once its required
// documents are uploaded. Only the owner may submit.
func (h *DocumentHandlers) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authorizeOwner(c, id) {
		return
	}

	if err := h.docSvc.Submit(c.Request.Context(), id); err != nil {
		if err == domain.ErrEstablishmentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Documents submitted for review"}})
}

func (h *DocumentHandlers) authorizeOwner(c *gin.Context, ownerID uint) bool {
	if _, err := h.guard.Authorize(middleware.BearerToken(c), ownerID); err != nil {
		switch err {
		case domain.ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		}
		c.Abort()
		return false
	}
	return true
}

func queryEstablishmentID(c *gin.Context) (uint, bool) {
	raw := c.Query("establishment_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid establishment_id"})
		return 0, false
	}
	return uint(id), true
}
