// Package store provides SQLite-backed durable storage for generated
// datasets.
//
// Layout notes:
//   - Every data row carries the run_id that produced it. Rollback is a
//     run-keyed delete in reverse dependency order; other runs' data is
//     never touched.
//   - Companies and branches share one table, distinguished by
//     is_branch with branches pointing at parent_company_id.
//   - Order items and delivery attempts are flattened into their own
//     tables keyed by the parent record.
//
// Writes go through Writer, which batches multi-row inserts, and are
// gated by Gateway, which re-runs the safety checks before handing a
// writer out.
package store
