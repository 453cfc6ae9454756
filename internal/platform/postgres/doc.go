// Package postgres provides PostgreSQL implementations of the persistence
// interfaces defined in the store package. Each store maps database errors
// to the store package's sentinel errors so callers never depend on
// driver-specific error types.
package postgres
