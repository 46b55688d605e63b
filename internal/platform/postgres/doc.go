// Package postgres implements the store interfaces against a
// PostgreSQL database accessed through database/sql with the pgx
// driver.
package postgres
