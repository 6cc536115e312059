// Package ratings defines the shared data model for rating data: user and
// item identifiers, timestamped rating events, and the sparse rating
// vectors the rest of the toolkit computes over.
package ratings
