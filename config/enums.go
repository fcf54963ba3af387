package config

//go:generate go tool go-enum --names --marshal

// Policy for output files which already exist.
// ENUM(fail, skip, overwrite)
type ExistingMode int
