package ports

import (
	"context"

	"storefront/internal/core/domain/model/invoice"
	"storefront/internal/core/domain/model/order"
)

// InvoiceRenderer turns an invoice payload into a PDF document.
type InvoiceRenderer interface {
	Render(ctx context.Context, payload invoice.Payload) ([]byte, error)
}

// DocumentStore archives rendered documents and returns their public URL.
type DocumentStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// OrderEventPublisher delivers order events. Delivery is best effort; callers
// log failures and carry on.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
}

// IdempotencyStore remembers the outcome of client-keyed requests.
type IdempotencyStore interface {
	// Reserve claims key. When the key was already used it returns the stored
	// result, or an empty string with reserved=false while the first request
	// is still running.
	Reserve(ctx context.Context, key string) (result string, reserved bool, err error)

	// Complete stores the result of the request that reserved key.
	Complete(ctx context.Context, key, result string) error

	// Release forgets key so that the client may retry.
	Release(ctx context.Context, key string) error
}
