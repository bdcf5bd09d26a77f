package server

var (
	// Version of executable
	Version = "0.0.1-alpha"

	// Commit of executable
	Commit = "HEAD"
)

// FormattedVersion returns version and commit
func FormattedVersion() string {
	return Version + " (" + Commit + ")"
}
