// Package store declares the persistence interfaces the services depend
// on, keeping the learning-ledger logic independent of the database that
// backs it.
package store
