// Package handler provides the review HTTP handlers.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/api"
	"orderup_backend/internal/feature/review/domain/entity"
	"orderup_backend/internal/feature/review/transport/http/dto"
	"orderup_backend/internal/feature/review/usecase"
)

// ReviewUsecase is the review contract the handler depends on.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uint, in usecase.UpdateInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uint) error
	GetReview(ctx context.Context, userID, reviewID uint) (*entity.Review, error)
	ListReviews(ctx context.Context, userID uint, offset, limit int) ([]entity.Review, int64, entity.Stats, error)
}

// ReviewHandler serves /profile/reviews.
type ReviewHandler struct {
	uc ReviewUsecase
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(uc ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// List handles GET /profile/reviews?page=&limit=.
func (h *ReviewHandler) List(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	params, err := api.ParsePageParams(c.Request.URL.Query())
	if err != nil {
		api.WriteError(c, "list reviews", err)
		return
	}
	reviews, total, stats, err := h.uc.ListReviews(c.Request.Context(), userID, params.Offset(), params.Limit)
	if err != nil {
		api.WriteError(c, "list reviews", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewListRes(reviews, stats, api.NewPagination(params, total)))
}

// Create handles POST /profile/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "create review", err)
		return
	}
	review, err := h.uc.CreateReview(c.Request.Context(), userID, usecase.CreateInput{
		FoodItemID: req.FoodItemID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		api.WriteError(c, "create review", err)
		return
	}
	slog.Info("review submitted", "review_id", review.ID, "food_item_id", review.FoodItemID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.NewReviewRes(*review))
}

// Get handles GET /profile/reviews/:id.
func (h *ReviewHandler) Get(c *gin.Context) {
	userID, id, ok := h.owned(c, "get review")
	if !ok {
		return
	}
	review, err := h.uc.GetReview(c.Request.Context(), userID, id)
	if err != nil {
		api.WriteError(c, "get review", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewRes(*review))
}

// Update handles PUT /profile/reviews/:id.
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, id, ok := h.owned(c, "update review")
	if !ok {
		return
	}
	var req dto.UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.WriteBindError(c, "update review", err)
		return
	}
	review, err := h.uc.UpdateReview(c.Request.Context(), userID, id, usecase.UpdateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		api.WriteError(c, "update review", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewRes(*review))
}

// Delete handles DELETE /profile/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, id, ok := h.owned(c, "delete review")
	if !ok {
		return
	}
	if err := h.uc.DeleteReview(c.Request.Context(), userID, id); err != nil {
		api.WriteError(c, "delete review", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "review deleted"})
}

func (h *ReviewHandler) owned(c *gin.Context, op string) (uint, uint, bool) {
	userID, ok := api.RequireUserID(c)
	if !ok {
		return 0, 0, false
	}
	id, err := api.ParseID(c, "id")
	if err != nil {
		api.WriteError(c, op, err)
		return 0, 0, false
	}
	return userID, id, true
}
