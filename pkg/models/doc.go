// Package models contains the built-in leaf entity types. Each type is
// declared from an init function, so importing the package for side effects
// is enough to make the types available by name once the bootstrap runs.
package models
