// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the services, so business rules stay independent of the database.
//
// Implementations report missing rows with the entity-specific NotFound
// errors and uniqueness violations with the entity-specific Exists errors,
// all of which wrap ErrNotFound or ErrDuplicate.
package store
