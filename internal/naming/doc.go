// Package naming generates S3-compatible bucket names.
//
// Names follow the pattern {prefix}-{suffix} where the suffix is drawn
// uniformly from lowercase letters and digits. Results are coerced into
// the S3 bucket grammar: at most 63 characters, starting and ending with
// a letter or digit. The random suffix keeps repeated runs from colliding
// on a namespace that is globally unique.
package naming
