// Package pipeline implements the ticker-metadata ingestion pipeline.
//
// A run executes four stages strictly in sequence:
//   - counting: one catalog call establishing the page count
//   - listing: one fetch per catalog page, fanned out over a bounded worker pool
//   - enriching: one detail fetch per instrument over a second bounded pool,
//     filtered to records the detail endpoint marks active
//   - persisting: one idempotent upsert per record, bounded and retried
//
// A stage never starts before the previous stage's full output is assembled.
package pipeline
