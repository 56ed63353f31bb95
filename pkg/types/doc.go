// Package types defines the Store and Table interfaces, entity types, and
// standard errors for the PrimeOS data layer.
package types
