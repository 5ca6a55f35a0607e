// Package pg connects to PostgreSQL through a pgx pool, runs goose
// migrations from an embedded filesystem and classifies common driver errors.
package pg
