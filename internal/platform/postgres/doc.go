// Package postgres implements the internal/store interfaces on PostgreSQL
// through the pgx database/sql driver, and carries the schema migrations
// applied with goose.
package postgres
