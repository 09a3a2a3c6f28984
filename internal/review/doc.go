// Package review runs aligned subtitle line pairs through a batched,
// sequential quality review against a pluggable reviewer, delivering
// progress, per-batch results, and a terminal signal over channels so the
// caller can merge results from its own control path.
//
// Row identity is recomputed locally for every result: whatever identifier
// the remote service returned is discarded, so a malformed or hallucinated
// id can never corrupt an unrelated row.
package review
