// Package kernel provides the shared primitives of the storefront domain model.
//
// The package includes:
//   - UUID: a validated identifier used by every aggregate
//   - money helpers: amounts are shopspring decimals rounded to cents and never negative
//
// Values are immutable and safe for concurrent use.
package kernel
