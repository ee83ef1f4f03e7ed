// Package pricing contains the core pricing domain: product configurations,
// attribute normalization against provider capability sets, shipping quotes,
// and the recommended-method selection rule.
//
// Everything in this package is a request-scoped value object. Nothing here
// owns persistent or shared mutable state.
package pricing
