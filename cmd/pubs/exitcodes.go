package main

// Exit codes reported by the pubs CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, filesystem failure)
	ExitConfigError = 2 // Configuration error (no site root, invalid pubs.yml)
	ExitDataError   = 3 // Data error (malformed publications CSV)
	ExitDrift       = 4 // Generated files out of sync with the CSV
)
