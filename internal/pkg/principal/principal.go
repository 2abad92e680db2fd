// Package principal carries the authenticated caller through a request.
// Authentication happens upstream; the gateway forwards the caller as headers
// which are trusted verbatim once they pass the shape checks in New.
package principal

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

const (
	HeaderUserID = "X-User-Id"
	HeaderEmail  = "X-User-Email"
	HeaderRole   = "X-User-Role"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ErrMissing is returned when a request carries no principal.
var ErrMissing = errors.New("principal is missing")

type Principal struct {
	UserID kernel.UUID
	Email  string
	Role   Role
}

// New validates the raw header values. An empty role means customer.
func New(userID, email, role string) (Principal, error) {
	if strings.TrimSpace(userID) == "" {
		return Principal{}, ErrMissing
	}

	id, idErr := kernel.UUIDFromString(userID)

	email = strings.TrimSpace(email)
	var emailErr error
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			emailErr = errs.NewValueIsInvalidErrorWithCause(HeaderEmail, err)
		}
	}

	r := Role(strings.ToLower(strings.TrimSpace(role)))
	var roleErr error
	switch r {
	case "":
		r = RoleCustomer
	case RoleCustomer, RoleAdmin:
	default:
		roleErr = errs.NewValueIsInvalidError(HeaderRole)
	}

	if err := errors.Join(idErr, emailErr, roleErr); err != nil {
		return Principal{}, err
	}
	return Principal{UserID: id, Email: email, Role: r}, nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether p may see data owned by ownerID.
func (p Principal) CanAccess(ownerID kernel.UUID) bool {
	return p.IsAdmin() || p.UserID.IsEqual(ownerID)
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	if !ok {
		return Principal{}, ErrMissing
	}
	return p, nil
}
