// Package store defines interfaces for data persistence operations on users and
// cards. These interfaces abstract the underlying database from the services,
// so business rules stay independent of PostgreSQL specifics.
package store
