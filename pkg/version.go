// Package rncdb loads the taxpayer registry (RNC) export into a relational
// database.
package rncdb

var (
	// Version of the application, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
