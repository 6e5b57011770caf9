// Package types provides the canonical record shapes shared across the
// steamtrack packages.
//
// The central type is GameRecord, the reconciled caller-facing view of one
// game built from a single provider fan-out. ListRow is its lightweight
// projection used in ranked grids. Both are plain data: the core exposes
// values, never markup.
package types
