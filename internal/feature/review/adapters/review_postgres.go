// Package adapters provides the GORM repository for reviews and the rating recompute.
package adapters

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "orderup_backend/internal/feature/catalog/domain/entity"
	catalogusecase "orderup_backend/internal/feature/catalog/usecase"
	"orderup_backend/internal/feature/review/domain/entity"
	"orderup_backend/internal/feature/review/usecase"
	platformdb "orderup_backend/internal/platform/db"
)

type reviewPostgres struct {
	db *gorm.DB
}

var _ usecase.ReviewRepository = (*reviewPostgres)(nil)

// NewReviewPostgres creates the GORM review repository.
func NewReviewPostgres(db *gorm.DB) *reviewPostgres {
	return &reviewPostgres{db: db}
}

func (r *reviewPostgres) Create(ctx context.Context, rv *entity.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockFoodItem(tx, rv.FoodItemID); err != nil {
			return err
		}

		if rv.OrderID != nil {
			var n int64
			err := tx.Table("order_items").
				Joins("JOIN orders ON orders.id = order_items.order_id").
				Where("orders.id = ? AND orders.user_id = ? AND order_items.food_item_id = ?", *rv.OrderID, rv.UserID, rv.FoodItemID).
				Count(&n).Error
			if err != nil {
				return err
			}
			if n == 0 {
				return usecase.ErrInvalidReview
			}
		}

		// NULL order ids never collide in the unique index, so the no-order case is checked here
		// under the food item lock.
		dup := tx.Model(&entity.Review{}).Where("user_id = ? AND food_item_id = ?", rv.UserID, rv.FoodItemID)
		if rv.OrderID == nil {
			dup = dup.Where("order_id IS NULL")
		} else {
			dup = dup.Where("order_id = ?", *rv.OrderID)
		}
		var existing int64
		if err := dup.Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return usecase.ErrDuplicateReview
		}

		if err := tx.Omit(clause.Associations).Create(rv).Error; err != nil {
			if platformdb.IsDuplicateKey(err) {
				return usecase.ErrDuplicateReview
			}
			return err
		}
		return recomputeRating(tx, rv.FoodItemID)
	})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).First(&rv.FoodItem, rv.FoodItemID).Error
}

func (r *reviewPostgres) Update(ctx context.Context, userID, reviewID uint, apply func(rv *entity.Review)) (*entity.Review, error) {
	var rv entity.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOwned(tx, userID, reviewID, &rv); err != nil {
			return err
		}
		if err := lockFoodItem(tx, rv.FoodItemID); err != nil {
			return err
		}
		apply(&rv)
		if err := tx.Model(&rv).Select("Rating", "Comment", "UpdatedAt").Updates(&rv).Error; err != nil {
			return err
		}
		return recomputeRating(tx, rv.FoodItemID)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByIDForUser(ctx, userID, reviewID)
}

func (r *reviewPostgres) Delete(ctx context.Context, userID, reviewID uint) (uint, error) {
	var rv entity.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOwned(tx, userID, reviewID, &rv); err != nil {
			return err
		}
		if err := lockFoodItem(tx, rv.FoodItemID); err != nil {
			return err
		}
		res := tx.Delete(&entity.Review{}, rv.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrReviewNotFound
		}
		return recomputeRating(tx, rv.FoodItemID)
	})
	if err != nil {
		return 0, err
	}
	return rv.FoodItemID, nil
}

func (r *reviewPostgres) FindByIDForUser(ctx context.Context, userID, reviewID uint) (*entity.Review, error) {
	var rv entity.Review
	if err := findOwned(r.db.WithContext(ctx).Preload("FoodItem"), userID, reviewID, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewPostgres) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]entity.Review, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entity.Review{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []entity.Review
	err := db.Preload("FoodItem").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewPostgres) StatsByUser(ctx context.Context, userID uint) (entity.Stats, error) {
	agg, err := aggregate(r.db.WithContext(ctx).Model(&entity.Review{}).Where("user_id = ?", userID))
	if err != nil {
		return entity.Stats{}, err
	}
	stats := entity.Stats{Total: agg.ReviewCount}
	if agg.AvgRating.Valid {
		stats.AverageRating = agg.AvgRating.Float64
	}
	return stats, nil
}

type ratingAggregate struct {
	AvgRating   sql.NullFloat64
	ReviewCount int64
}

func aggregate(q *gorm.DB) (ratingAggregate, error) {
	var agg ratingAggregate
	err := q.Select("AVG(rating) AS avg_rating, COUNT(*) AS review_count").Scan(&agg).Error
	return agg, err
}

// lockFoodItem takes the row lock that serialises every rating recompute for the item.
func lockFoodItem(tx *gorm.DB, foodItemID uint) error {
	var item catalog.FoodItem
	err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		First(&item, foodItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalogusecase.ErrFoodItemNotFound
	}
	return err
}

// recomputeRating sets the food item's rating to the average of its reviews, or NULL when none remain.
func recomputeRating(tx *gorm.DB, foodItemID uint) error {
	agg, err := aggregate(tx.Model(&entity.Review{}).Where("food_item_id = ?", foodItemID))
	if err != nil {
		return err
	}
	var rating any = gorm.Expr("NULL")
	if agg.ReviewCount > 0 && agg.AvgRating.Valid {
		rating = agg.AvgRating.Float64
	}
	return tx.Model(&catalog.FoodItem{}).Where("id = ?", foodItemID).Update("rating", rating).Error
}

func findOwned(db *gorm.DB, userID, reviewID uint, dst *entity.Review) error {
	err := db.Where("id = ? AND user_id = ?", reviewID, userID).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrReviewNotFound
	}
	return err
}
