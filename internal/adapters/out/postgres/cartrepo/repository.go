package cartrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Save creates the cart row on first use, upserts the current lines and
// deletes lines no longer present. A cart created concurrently for the same
// customer is reused.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	header := CartDTO{ID: c.ID().Bytes(), CustomerID: c.CustomerID().Bytes()}
	err := db.Omit("Items").Clauses(clause.OnConflict{DoNothing: true, Columns: []clause.Column{{Name: "id"}}}).
		Create(&header).Error
	if err != nil && !pgerr.IsUniqueViolation(err) {
		return err
	}

	var stored CartDTO
	if err = db.Select("id").First(&stored, "customer_id = ?", header.CustomerID).Error; err != nil {
		return err
	}

	items := itemsFromDomain(stored.ID, c.Items())
	productIDs := make([]any, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	stale := db.Where("cart_id = ?", stored.ID)
	if len(productIDs) > 0 {
		stale = stale.Where("product_id NOT IN ?", productIDs)
	}
	if err = stale.Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&items).Error
}

// Clear removes every line of the customer's cart in one statement.
func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("cart_id IN (?)", r.db.Model(&CartDTO{}).Select("id").Where("customer_id = ?", customerID.Bytes())).
		Delete(&CartItemDTO{}).Error
}
