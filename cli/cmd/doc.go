// Package cmd implements the ledgerscript subcommands: compile, dump, query,
// diff, and init. The interactive repl command lives in package repl.
//
// Commands read their sources from the files named on the command line, or
// from standard input when none are given. Files named more than once, by
// any path, are read once.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
