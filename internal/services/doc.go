// Package services carries the error taxonomy shared by external
// collaborators (the review service client, the store) and maps failures to
// the run status that should be persisted.
package services
