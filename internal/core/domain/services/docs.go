// Package services provides domain services that compute values spanning more
// than one aggregate of the storefront.
//
// The package includes:
//   - DeliveryFeePolicy: the delivery fee charged for a given subtotal
//   - OrderPricer: prices product lines into a Quote (lines, subtotal, fee, total)
//
// Both are pure and safe for concurrent use. Carts and orders are priced by the
// same OrderPricer so that a total shown in the cart is the total the order
// writer accepts.
package services
