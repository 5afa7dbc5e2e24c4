// Package experiment is the static registry of experiment kinds. For every
// kind it exposes display metadata, the editable parameter spec (flat or
// partitioned into categories) and the structural validation rule applied
// before submission.
//
// Categories that share a parameter block are composed with
// model.Compose at construction time: entries declared by the category win
// over same-named entries from the shared block. The registry is built once
// and never mutated; lookups hand out deep copies and are safe for
// concurrent use.
package experiment
