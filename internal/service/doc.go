// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The service package implements the application layer in the clean architecture,
// containing use cases that coordinate the flow of data between external interfaces
// (API, message queues, etc.) and the domain layer. It abstracts away infrastructure
// details while orchestrating domain entities to fulfill business requirements.
//
// Key components:
//
// 1. Service Interfaces:
//   - Define application-specific operations available to the delivery mechanisms
//   - Each service focuses on one resource (users, priorities, categories, tasks) or on authentication
//
// 2. Use Case Implementations:
//   - Run every mutation inside a store.Transactor scope
//   - Check uniqueness and references before writing, and translate the
//     store's constraint errors when a concurrent writer wins the race
//   - Enforce application-level business rules that span multiple domain entities
//
// 3. Dependency Management:
//   - Services receive dependencies through constructor injection
//   - Core dependencies are the store interfaces, a Transactor and a logger
//
// 4. Error Handling:
//   - Return the sentinels in errors.go, wrapped with %w, for expected failures
//   - Domain validation errors (domain.ErrValidation) pass through unchanged
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations, maintaining the Dependency
// Inversion Principle of clean architecture.
package service
