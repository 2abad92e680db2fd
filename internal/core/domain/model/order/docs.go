// Package order provides the Order aggregate of the storefront: the header,
// its line items with snapshot prices, the shipping-address snapshot and the
// status state machine.
//
// Key business rules:
//   - an order has at least one item and every item has a positive quantity
//   - total amount = Σ(unit price × quantity) + delivery fee, fixed at creation
//   - unit prices and product names are copied into the items, so later catalog
//     changes or product deletion never rewrite history
//   - the shipping address is copied into the order at placement time
//   - cash orders start in PendingConfirmation, every other payment method in AwaitingPayment
//   - status changes only along the transition graph documented on Status
//   - Cancelled orders are never invoiced
package order
