package types

import "errors"

// Generator synthesizes a complete Layout from the current possessions.
// Generate must not modify previous; it reads it only to preserve slots the
// generator does not manage.
type Generator interface {
	Generate(previous *Layout) *Layout
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(previous *Layout) *Layout

// Generate calls f(previous).
func (f GeneratorFunc) Generate(previous *Layout) *Layout {
	return f(previous)
}

// Auto layout errors.
var (
	ErrGeneratorExists   = errors.New("auto layout is already registered")
	ErrGeneratorNotFound = errors.New("auto layout not found")
	ErrInvalidGenerator  = errors.New("auto layout needs a name and a generator")
	ErrTagNotActive      = errors.New("tag must be open before running an auto layout")
	ErrNoActiveLayout    = errors.New("no active layout")
)
