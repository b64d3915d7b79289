// Package config defines the workspace configuration model and its HCL
// loader. The `config.Model` is the single source of truth for discovery
// (project directories), the selector engine (named predicates), and the
// checkout manager (local overrides); nothing below the loader ever touches
// raw HCL.
package config
