// Package store persists review runs and their per-row results in SQLite so
// a review survives the process that produced it. Rows are inserted unscored
// when a run is created and updated in place as result batches arrive; rows
// whose batches failed simply stay unscored.
package store
