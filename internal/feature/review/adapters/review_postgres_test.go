package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "orderup_backend/internal/feature/catalog/domain/entity"
	catalogusecase "orderup_backend/internal/feature/catalog/usecase"
	order "orderup_backend/internal/feature/order/domain/entity"
	"orderup_backend/internal/feature/review/domain/entity"
	"orderup_backend/internal/feature/review/usecase"
	"orderup_backend/internal/platform/db/dbtest"
)

func setup(t *testing.T) (*gorm.DB, *reviewPostgres, *catalog.FoodItem) {
	t.Helper()

	db := dbtest.New(t, &order.Order{}, &order.OrderItem{}, &entity.Review{})
	food := &catalog.FoodItem{Name: "Pizza", Description: "Cheese", Category: "main", Price: decimal.RequireFromString("12.50"), IsAvailable: true}
	require.NoError(t, db.Create(food).Error)
	return db, NewReviewPostgres(db), food
}

func ratingOf(t *testing.T, db *gorm.DB, id uint) *float64 {
	t.Helper()
	var item catalog.FoodItem
	require.NoError(t, db.First(&item, id).Error)
	return item.Rating
}

func placeOrder(t *testing.T, db *gorm.DB, userID, foodItemID uint) uint {
	t.Helper()
	o := &order.Order{
		Reference:       order.NewReference(time.Now()),
		UserID:          userID,
		TotalAmount:     decimal.RequireFromString("12.50"),
		Status:          order.StatusDelivered,
		PaymentStatus:   order.PaymentPaid,
		PaymentMethod:   "cash",
		DeliveryAddress: "Bole Road 12",
	}
	require.NoError(t, db.Omit(clause.Associations).Create(o).Error)
	item := &order.OrderItem{OrderID: o.ID, FoodItemID: foodItemID, Quantity: 1, Price: decimal.RequireFromString("12.50")}
	require.NoError(t, db.Omit(clause.Associations).Create(item).Error)
	return o.ID
}

func TestReviewPostgres_RatingFollowsReviews(t *testing.T) {
	db, repo, food := setup(t)
	ctx := context.Background()

	assert.Nil(t, ratingOf(t, db, food.ID))

	four := &entity.Review{UserID: 1, FoodItemID: food.ID, Rating: 4}
	five := &entity.Review{UserID: 2, FoodItemID: food.ID, Rating: 5}
	require.NoError(t, repo.Create(ctx, four))
	require.NoError(t, repo.Create(ctx, five))
	assert.Equal(t, "Pizza", five.FoodItem.Name)

	require.NotNil(t, ratingOf(t, db, food.ID))
	assert.InDelta(t, 4.5, *ratingOf(t, db, food.ID), 1e-9)

	foodID, err := repo.Delete(ctx, 2, five.ID)
	require.NoError(t, err)
	assert.Equal(t, food.ID, foodID)
	require.NotNil(t, ratingOf(t, db, food.ID))
	assert.InDelta(t, 4.0, *ratingOf(t, db, food.ID), 1e-9)

	_, err = repo.Delete(ctx, 1, four.ID)
	require.NoError(t, err)
	assert.Nil(t, ratingOf(t, db, food.ID))
}

func TestReviewPostgres_UpdateRecomputes(t *testing.T) {
	db, repo, food := setup(t)
	ctx := context.Background()

	rv := &entity.Review{UserID: 1, FoodItemID: food.ID, Rating: 2, Comment: "cold"}
	require.NoError(t, repo.Create(ctx, rv))

	updated, err := repo.Update(ctx, 1, rv.ID, func(r *entity.Review) { r.Rating = 5 })
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "cold", updated.Comment)
	assert.InDelta(t, 5.0, *ratingOf(t, db, food.ID), 1e-9)

	_, err = repo.Update(ctx, 2, rv.ID, func(r *entity.Review) { r.Rating = 1 })
	assert.ErrorIs(t, err, usecase.ErrReviewNotFound)
	assert.InDelta(t, 5.0, *ratingOf(t, db, food.ID), 1e-9)
}

func TestReviewPostgres_Uniqueness(t *testing.T) {
	db, repo, food := setup(t)
	ctx := context.Background()
	orderID := placeOrder(t, db, 1, food.ID)

	require.NoError(t, repo.Create(ctx, &entity.Review{UserID: 1, FoodItemID: food.ID, Rating: 4}))
	err := repo.Create(ctx, &entity.Review{UserID: 1, FoodItemID: food.ID, Rating: 3})
	assert.ErrorIs(t, err, usecase.ErrDuplicateReview)

	require.NoError(t, repo.Create(ctx, &entity.Review{UserID: 1, FoodItemID: food.ID, OrderID: &orderID, Rating: 5}))
	err = repo.Create(ctx, &entity.Review{UserID: 1, FoodItemID: food.ID, OrderID: &orderID, Rating: 1})
	assert.ErrorIs(t, err, usecase.ErrDuplicateReview)

	var n int64
	require.NoError(t, db.Model(&entity.Review{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
	assert.InDelta(t, 4.5, *ratingOf(t, db, food.ID), 1e-9)
}

func TestReviewPostgres_VerifiedPurchase(t *testing.T) {
	db, repo, food := setup(t)
	ctx := context.Background()
	soup := &catalog.FoodItem{Name: "Soup", Description: "Hot", Category: "starter", Price: decimal.RequireFromString("4.00"), IsAvailable: true}
	require.NoError(t, db.Create(soup).Error)
	orderID := placeOrder(t, db, 1, food.ID)

	tests := []struct {
		name       string
		userID     uint
		foodItemID uint
	}{
		{"order belongs to another user", 2, food.ID},
		{"order does not contain the item", 1, soup.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, &entity.Review{UserID: tt.userID, FoodItemID: tt.foodItemID, OrderID: &orderID, Rating: 5})
			assert.ErrorIs(t, err, usecase.ErrInvalidReview)
		})
	}
	assert.Nil(t, ratingOf(t, db, soup.ID))
}

func TestReviewPostgres_UnknownFoodItem(t *testing.T) {
	_, repo, _ := setup(t)

	err := repo.Create(context.Background(), &entity.Review{UserID: 1, FoodItemID: 404, Rating: 5})

	assert.ErrorIs(t, err, catalogusecase.ErrFoodItemNotFound)
}

func TestReviewPostgres_FailedRecomputeRollsBackReview(t *testing.T) {
	db, repo, food := setup(t)
	boom := errors.New("lock timeout")
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_rating", func(tx *gorm.DB) {
		if tx.Statement.Table == "food_items" {
			_ = tx.AddError(boom)
		}
	}))

	err := repo.Create(context.Background(), &entity.Review{UserID: 1, FoodItemID: food.ID, Rating: 5})

	assert.ErrorIs(t, err, boom)
	var n int64
	require.NoError(t, db.Model(&entity.Review{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Nil(t, ratingOf(t, db, food.ID))
}

func TestReviewPostgres_ListAndStats(t *testing.T) {
	db, repo, food := setup(t)
	ctx := context.Background()
	soup := &catalog.FoodItem{Name: "Soup", Description: "Hot", Category: "starter", Price: decimal.RequireFromString("4.00"), IsAvailable: true}
	require.NoError(t, db.Create(soup).Error)

	require.NoError(t, repo.Create(ctx, &entity.Review{UserID: 1, FoodItemID: food.ID, Rating: 3}))
	require.NoError(t, repo.Create(ctx, &entity.Review{UserID: 1, FoodItemID: soup.ID, Rating: 4}))
	require.NoError(t, repo.Create(ctx, &entity.Review{UserID: 2, FoodItemID: soup.ID, Rating: 1}))

	page, total, err := repo.ListByUser(ctx, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Soup", page[0].FoodItem.Name)

	stats, err := repo.StatsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.InDelta(t, 3.5, stats.AverageRating, 1e-9)

	none, err := repo.StatsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, entity.Stats{}, none)
}
