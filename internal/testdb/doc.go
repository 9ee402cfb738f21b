// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Tests using it are skipped unless
// MESTO_TEST_DATABASE_URL is set.
package testdb
