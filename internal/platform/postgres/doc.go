// Package postgres provides PostgreSQL implementations of the store
// interfaces together with the embedded schema migrations they rely on.
// Queries go through database/sql using the pgx driver.
package postgres
