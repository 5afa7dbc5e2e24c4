// Package validation implements the structural rules checked against an
// assembled experiment spec before it is submitted. Rules are composed from
// String, Number, Array and Object builders, each of which reports Issues
// keyed by JSON pointer and dotted field path. Every rule can also describe
// itself as an OpenAPI schema so the same constraints can be published to
// clients that validate on their own.
package validation
