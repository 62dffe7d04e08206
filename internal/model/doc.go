// Package model defines shared data types for the ticker ingestion pipeline.
//
// Conventions:
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: string ticker symbols, uuid.UUID for run identifiers
package model
