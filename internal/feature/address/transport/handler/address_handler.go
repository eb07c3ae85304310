// Package handler provides the address book's HTTP handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/address/domain/entity"
	"orderup_backend/internal/feature/address/transport/http/dto"
	"orderup_backend/internal/feature/address/usecase"
)

type AddressUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Address, error)
	Create(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Address, error)
	Update(ctx context.Context, userID, addressID uint, in usecase.UpdateInput) (*entity.Address, error)
	Delete(ctx context.Context, userID, addressID uint) error
}

// AddressHandler serves /addresses.
type AddressHandler struct {
	uc AddressUsecase
}

func NewAddressHandler(uc AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

// List handles GET /addresses.
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	list, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, "list addresses", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAddressResList(list))
}

// Create handles POST /addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "create address", err)
		return
	}
	a, err := h.uc.Create(c.Request.Context(), userID, usecase.CreateInput{
		FullAddress: req.FullAddress,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		api.WriteError(c, "create address", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAddressRes(*a))
}

// Update handles PUT /addresses/:id.
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "update address", err)
		return
	}
	var req dto.UpdateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update address", err)
		return
	}
	a, err := h.uc.Update(c.Request.Context(), userID, id, usecase.UpdateInput{
		FullAddress: req.FullAddress,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		api.WriteError(c, "update address", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAddressRes(*a))
}

// Delete handles DELETE /addresses/:id.
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, "delete address", err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		api.WriteError(c, "delete address", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "address deleted"})
}
