// Package store persists enriched ticker records to PostgreSQL.
//
// Rows are keyed by symbol and written with insert-or-update semantics:
// re-ingesting a symbol fully overwrites its row, so repeated runs converge
// to the latest detail fetch instead of accumulating duplicates.
package store
