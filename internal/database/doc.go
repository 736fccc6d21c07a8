// Package database provides the PostgreSQL connection pool used by the outcome journal.
package database
