package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/domain"
	"github.com/deadloked8999/e-bar/internal/http/middleware"
)

// logoExtensions whitelists image extensions for logo uploads
var logoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// EstablishmentHandlers handles establishment profile operations.
// Reads require a valid token only; mutations additionally require the
// token subject to own the targeted establishment.
type EstablishmentHandlers struct {
	estRepo     domain.EstablishmentRepository
	guard       domain.AuthorizationGuard
	store       domain.FileStore
	maxLogoSize int64
}

// NewEstablishmentHandlers creates new establishment handlers
func NewEstablishmentHandlers(estRepo domain.EstablishmentRepository, guard domain.AuthorizationGuard, store domain.FileStore, maxLogoSize int64) *EstablishmentHandlers {
	return &EstablishmentHandlers{
		estRepo:     estRepo,
		guard:       guard,
		store:       store,
		maxLogoSize: maxLogoSize,
	}
}

// UpdateEstablishmentRequest carries the mutable profile fields.
// Credentials (username, email, password) change only through the auth
// flows.
type UpdateEstablishmentRequest struct {
	Name          *string `json:"name,omitempty"`
	Position      *string `json:"position,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	BusinessName  *string `json:"business_name,omitempty"`
	BusinessType  *string `json:"business_type,omitempty"`
	BusinessPhone *string `json:"business_phone,omitempty"`
	Website       *string `json:"website,omitempty"`
	Address       *string `json:"address,omitempty"`
}

// Get returns an establishment profile by id
func (h *EstablishmentHandlers) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	est, err := h.estRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrEstablishmentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get establishment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": establishmentResponse(est)})
}

// Update modifies an establishment profile. Only the owner may update.
func (h *EstablishmentHandlers) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.authorizeOwner(c, id) {
		return
	}

	est, err := h.estRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrEstablishmentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get establishment"})
		return
	}

	applyUpdate(est, &req)

	if err := h.estRepo.Update(c.Request.Context(), est); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update establishment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": establishmentResponse(est)})
}

// UploadLogo stores an image as the establishment logo. Only the owner
// may upload.
func (h *EstablishmentHandlers) UploadLogo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.authorizeOwner(c, id) {
		return
	}

	est, err := h.estRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrEstablishmentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Establishment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get establishment"})
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo file is required"})
		return
	}
	if fileHeader.Size > h.maxLogoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo exceeds the maximum allowed size"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !logoExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo must be an image file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read logo"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxLogoSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read logo"})
		return
	}
	if int64(len(data)) > h.maxLogoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo exceeds the maximum allowed size"})
		return
	}

	path, err := h.store.Save(fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store logo"})
		return
	}

	oldPath := est.LogoPath
	est.LogoPath = path
	if err := h.estRepo.Update(c.Request.Context(), est); err != nil {
		_ = h.store.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update establishment"})
		return
	}
	if oldPath != "" {
		_ = h.store.Remove(oldPath)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logo_path": path}})
}

// authorizeOwner checks that the request bearer token belongs to the
// establishment being mutated. Writes the error response itself.
func (h *EstablishmentHandlers) authorizeOwner(c *gin.Context, ownerID uint) bool {
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

func applyUpdate(est *domain.Establishment, req *UpdateEstablishmentRequest) {
	if req.Name != nil {
		est.Name = *req.Name
	}
	if req.Position != nil {
		est.Position = *req.Position
	}
	if req.Phone != nil {
		est.Phone = *req.Phone
	}
	if req.BusinessName != nil {
		est.BusinessName = *req.BusinessName
	}
	if req.BusinessType != nil {
		est.BusinessType = *req.BusinessType
	}
	if req.BusinessPhone != nil {
		est.BusinessPhone = *req.BusinessPhone
	}
	if req.Website != nil {
		est.Website = *req.Website
	}
	if req.Address != nil {
		est.Address = *req.Address
	}
}

// pathID parses a numeric path parameter, writing a 400 when it is not
// a positive integer.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
