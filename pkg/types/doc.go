// Package types defines the Layout entity, its persisted string encoding,
// the interfaces the layout engine consumes from its host (item identity,
// containers, secondary storage) and the standard errors shared by every
// taglayout package.
package types
