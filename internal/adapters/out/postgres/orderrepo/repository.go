package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db          *gorm.DB
	compensator compensator
}

// compensator records the inverse of a completed write.
type compensator interface {
	Compensate(step string, undo func(ctx context.Context) error)
}

func NewGormOrderRepository(db *gorm.DB, c compensator) *GormOrderRepository {
	return &GormOrderRepository{db: db, compensator: c}
}

// Add inserts the header. Its inverse deletes the header together with any
// items written after it.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Items").Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("orderId", errors.New("an order with this id already exists"))
		}
		return err
	}

	r.compensator.Compensate("insert order "+aggregate.ID().String(), func(ctx context.Context) error {
		return r.Delete(ctx, aggregate.ID())
	})
	return nil
}

func (r *GormOrderRepository) AddItem(ctx context.Context, orderID kernel.UUID, item order.Item) error {
	if err := errors.Join(orderID.Validate(), item.Validate()); err != nil {
		return err
	}

	dto := itemFromDomain(orderID, item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return errs.NewObjectNotFoundErrorWithCause("order", orderID.String(), err)
		}
		return err
	}

	r.compensator.Compensate("insert order item "+item.ID().String(), func(ctx context.Context) error {
		return r.db.WithContext(ctx).Delete(&OrderItemDTO{}, "id = ?", dto.ID).Error
	})
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, r.notFound(id, err)
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) GetHeader(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, r.notFound(id, err)
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) ListItems(ctx context.Context, orderID kernel.UUID) ([]order.Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderItemDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return itemsToDomain(dtos)
}

// UpdateStatus is a compare-and-set on the status column. When it wins, the
// inverse puts the previous status back unless the row moved on since.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	expected, target order.Status,
) (bool, error) {
	if err := errors.Join(id.Validate(), expected.Validate(), target.Validate()); err != nil {
		return false, err
	}

	won, err := r.swapStatus(ctx, id, expected, target)
	if err != nil || !won {
		return false, err
	}

	r.compensator.Compensate(
		fmt.Sprintf("order %s status %s -> %s", id, expected, target),
		func(ctx context.Context) error {
			reverted, err := r.swapStatus(ctx, id, target, expected)
			if err != nil {
				return err
			}
			if !reverted {
				return fmt.Errorf("order %s is no longer %s", id, target)
			}
			return nil
		},
	)
	return true, nil
}

func (r *GormOrderRepository) swapStatus(ctx context.Context, id kernel.UUID, from, to order.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormOrderRepository) SetDocumentURL(ctx context.Context, id kernel.UUID, url string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Update("document_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func (r *GormOrderRepository) FindIncomplete(
	ctx context.Context,
	placedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("order_date < ?", placedBefore.UTC()).
		Where("expected_items <> (SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id)").
		Order("order_date").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Delete removes the items, then the header. A failure in between leaves an
// incomplete order that FindIncomplete still reports.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Delete(&OrderItemDTO{}, "order_id = ?", id.Bytes()).Error; err != nil {
		return err
	}
	return db.Delete(&OrderDTO{}, "id = ?", id.Bytes()).Error
}

func (r *GormOrderRepository) notFound(id kernel.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return err
}
