// Package mocks provides centralized mock implementations for testing.
//
// The in-memory stores behave like the PostgreSQL stores: IDs are assigned
// sequentially from 1, names and usernames are unique, missing rows yield the
// store's NotFound errors and returned entities are copies. NewMockStores
// wires the stores together so that tasks resolve their priority and
// categories, and deletes follow the schema's foreign key rules.
//
// Usage:
//
//	stores := mocks.NewMockStores()
//	svc := service.NewPriorityService(stores.Priorities, stores.Tx, logger)
//
// Each mock also exposes function fields (CreateFn, Err, ...) to force
// specific outcomes, and TestifyMockUserStore offers a testify/mock variant
// for call-level expectations.
package mocks
