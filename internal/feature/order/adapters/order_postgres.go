// Package adapters provides the GORM repository for orders, including the checkout transaction.
package adapters

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cart "orderup_backend/internal/feature/cart/domain/entity"
	catalog "orderup_backend/internal/feature/catalog/domain/entity"
	"orderup_backend/internal/feature/order/domain/entity"
	"orderup_backend/internal/feature/order/usecase"
)

type orderPostgres struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderPostgres)(nil)

// NewOrderPostgres creates the GORM order repository.
func NewOrderPostgres(db *gorm.DB) *orderPostgres {
	return &orderPostgres{db: db}
}

// Checkout locks the user's cart rows, checks them against snapshot and re-reads their food items
// under a share lock. price builds the order lines from that read, so a concurrent price or
// availability change is either seen here or waits for the commit. The order and its lines are
// inserted and exactly the snapshot rows deleted. Any mismatch rolls everything back.
func (r *orderPostgres) Checkout(ctx context.Context, order *entity.Order, snapshot []cart.CartItem, price func(locked []cart.CartItem) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []cart.CartItem
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("user_id = ?", order.UserID).
			Order("id").
			Find(&locked).Error
		if err != nil {
			return err
		}
		if !sameLines(locked, snapshot) {
			return usecase.ErrCartChanged
		}
		if err := attachFoodItems(tx, locked); err != nil {
			return err
		}
		if err := price(locked); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&order.Items).Error; err != nil {
			return err
		}

		ids := make([]uint, 0, len(snapshot))
		for _, line := range snapshot {
			ids = append(ids, line.ID)
		}
		res := tx.Where("user_id = ? AND id IN ?", order.UserID, ids).Delete(&cart.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return usecase.ErrCartChanged
		}
		return nil
	})
}

func attachFoodItems(tx *gorm.DB, lines []cart.CartItem) error {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.FoodItemID)
	}
	var foods []catalog.FoodItem
	err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
		Where("id IN ?", ids).
		Find(&foods).Error
	if err != nil {
		return err
	}
	byID := make(map[uint]catalog.FoodItem, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}
	for i := range lines {
		f, ok := byID[lines[i].FoodItemID]
		if !ok {
			return usecase.ErrCartChanged
		}
		lines[i].FoodItem = f
	}
	return nil
}

func (r *orderPostgres) FindByIDForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.withItems(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderPostgres) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]entity.Order, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entity.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := r.withItems(db).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderPostgres) UpdateStatus(ctx context.Context, orderID uint, apply func(o *entity.Order) error) (*entity.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o entity.Order
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&o, orderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrOrderNotFound
			}
			return err
		}
		if err := apply(&o); err != nil {
			return err
		}
		return tx.Model(&o).Select("Status", "PaymentStatus", "UpdatedAt").Updates(&o).Error
	})
	if err != nil {
		return nil, err
	}

	var out entity.Order
	if err := r.withItems(r.db.WithContext(ctx)).First(&out, orderID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *orderPostgres) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Preload("Items.FoodItem")
}

// sameLines reports whether the locked rows are exactly the snapshot rows with the same quantities.
func sameLines(locked, snapshot []cart.CartItem) bool {
	if len(locked) != len(snapshot) {
		return false
	}
	want := slices.Clone(snapshot)
	slices.SortFunc(want, func(a, b cart.CartItem) int { return cmp.Compare(a.ID, b.ID) })
	for i := range locked {
		if locked[i].ID != want[i].ID ||
			locked[i].FoodItemID != want[i].FoodItemID ||
			locked[i].Quantity != want[i].Quantity {
			return false
		}
	}
	return true
}
