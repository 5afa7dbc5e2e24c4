// Package model defines the declarative field specifications that describe
// an experiment form. A Spec is an ordered list of Fields; a Target groups a
// flat Spec or a list of Categories under one experiment kind. The types are
// plain data: registries build them once and hand out clones, renderers read
// them, and nothing in this package performs I/O.
//
// Field.Type selects the input control (`text`, `number`, `select`, `label`,
// `autocomplete`). Fields typed `fixed` carry a value that is submitted
// verbatim without any control, which is how the experiment action and the
// kernel/stress default payloads travel with the form. Field.Group names the
// nested object a field is written under when the submission is assembled.
package model
