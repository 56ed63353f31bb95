// Package service implements the PrimeOS entity services: per-family CRUD
// with soft-delete/restore semantics over the persistent store, snapshot
// feeds for subscribers, and the cross-entity search aggregator.
//
// Load paths never return errors; failures are logged and the previous
// snapshot stays in place. Mutating paths return errors to the caller and
// re-run the relevant load before resolving, so a service's published
// snapshot always reflects its own most recent completed mutation.
package service
