// Package driving defines the primary ports (use-case interfaces) offered
// to external actors such as the CLI, the TUI and the HTTP API.
package driving
