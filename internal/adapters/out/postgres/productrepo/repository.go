package productrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db          *gorm.DB
	compensator compensator
}

type compensator interface {
	Compensate(step string, undo func(ctx context.Context) error)
}

func NewGormProductRepository(db *gorm.DB, c compensator) *GormProductRepository {
	return &GormProductRepository{db: db, compensator: c}
}

// Add inserts a catalogue entry.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dto := FromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// DecrementStock runs
//
//	UPDATE products SET stock = stock - $q WHERE id = $id AND stock >= $q
//
// and records an increment as its inverse.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error {
	if err := validate(id, quantity); err != nil {
		return err
	}

	taken, err := r.take(ctx, id, quantity)
	if err != nil {
		return err
	}
	if !taken {
		return r.shortage(ctx, id, quantity)
	}

	r.compensator.Compensate(fmt.Sprintf("take %d of product %s", quantity, id), func(ctx context.Context) error {
		_, err := r.give(ctx, id, quantity)
		return err
	})
	return nil
}

// IncrementStock returns stock. Its inverse takes the same quantity again and
// fails if it has been sold in the meantime.
func (r *GormProductRepository) IncrementStock(ctx context.Context, id kernel.UUID, quantity int) (bool, error) {
	if err := validate(id, quantity); err != nil {
		return false, err
	}

	given, err := r.give(ctx, id, quantity)
	if err != nil || !given {
		return false, err
	}

	r.compensator.Compensate(fmt.Sprintf("return %d of product %s", quantity, id), func(ctx context.Context) error {
		taken, err := r.take(ctx, id, quantity)
		if err != nil {
			return err
		}
		if !taken {
			return errs.NewInsufficientStockError(id.String(), quantity, -1)
		}
		return nil
	})
	return true, nil
}

func (r *GormProductRepository) take(ctx context.Context, id kernel.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", id.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		if pgerr.IsCheckViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormProductRepository) give(ctx context.Context, id kernel.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", id.Bytes()).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// shortage explains why a conditional decrement matched no row.
func (r *GormProductRepository) shortage(ctx context.Context, id kernel.UUID, quantity int) error {
	p, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	return errs.NewInsufficientStockError(id.String(), quantity, p.Stock())
}

func validate(id kernel.UUID, quantity int) error {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return errors.Join(id.Validate(), quantityErr)
}
