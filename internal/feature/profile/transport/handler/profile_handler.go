// Package handler provides the profile's HTTP handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/api"
	authentity "orderup_backend/internal/feature/auth/domain/entity"
	"orderup_backend/internal/feature/profile/domain/entity"
	"orderup_backend/internal/feature/profile/transport/http/dto"
	"orderup_backend/internal/feature/profile/usecase"
)

// ImageField is the multipart field carrying the avatar.
const ImageField = "profile_image"

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*authentity.User, error)
	UpdateProfile(ctx context.Context, userID uint, in usecase.UpdateInput) (*authentity.User, error)
	UploadImage(ctx context.Context, userID uint, up usecase.Upload) (*authentity.User, error)
	Stats(ctx context.Context, userID uint) (*entity.Stats, error)
}

// ProfileHandler serves /profile.
type ProfileHandler struct {
	uc ProfileUsecase
}

func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	u, err := h.uc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(*u))
}

// Update handles PUT /profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update profile", err)
		return
	}
	u, err := h.uc.UpdateProfile(c.Request.Context(), userID, usecase.UpdateInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		api.WriteError(c, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(*u))
}

// UploadImage handles POST /profile/upload-image.
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile(ImageField)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		api.WriteError(c, "upload profile image", err)
		return
	}
	defer f.Close()

	u, err := h.uc.UploadImage(c.Request.Context(), userID, usecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		api.WriteError(c, "upload profile image", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(*u))
}

// Stats handles GET /profile/stats.
func (h *ProfileHandler) Stats(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	s, err := h.uc.Stats(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, "profile stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsRes(*s))
}
