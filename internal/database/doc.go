// Package database provides connection pool management for PostgreSQL.
//
// The ingester keeps all ticker metadata in a single relational database;
// one pool is shared by the store and any future readers.
package database
