// Package driven defines the secondary ports (driven adapters' interfaces).
// These are implemented by infrastructure adapters and consumed by services.
package driven
