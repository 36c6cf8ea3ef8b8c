// Package cli provides the command-line interface for stringd.
//
// Commands:
//   - serve: Run the string analysis HTTP service in the foreground
//   - analyze: Analyze a value and store it on a running server (or locally with --local)
//   - get: Show the stored record for a value
//   - delete: Remove the stored record for a value
//   - query: List stored records matching filter criteria
//   - health: Check that a server is reachable
//   - version: Show stringd version
//
// Client commands reach the server at --url, falling back to the url from
// config files and STRINGD_URL.
package cli
