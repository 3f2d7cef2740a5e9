// Package services implements the core use cases: relationship graph
// construction with link-reason classification, search snapshot building,
// query scoring and the query-side session cache.
package services
