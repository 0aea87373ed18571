// Package domain contains the core business entities of the application:
// users, priorities, categories and tasks. The types here are plain structs
// with validation; they know nothing about HTTP or SQL.
package domain
