// Package config defines the format-agnostic read records produced from a
// project's source files (project descriptor, model, documents) and the
// Loader interface that produces them.
//
// The records are the single input of the `compile` package. A concrete,
// HCL-backed Loader lives in the `hcl` package. Records carry raw key strings;
// key grammar is applied during compilation, not while reading.
package config
