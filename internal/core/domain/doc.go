// Package domain contains the core business entities for Vitalis.
// These types have no external dependencies and represent the
// content records, link graph vocabulary and search projections.
package domain
