// Package s3 checks bucket name availability against Amazon S3 or an
// S3-compatible object store.
//
// The probe is best effort: bucket names live in a global namespace, so
// a name that is free at check time can still be taken by the time the
// generated configuration is applied.
package s3
