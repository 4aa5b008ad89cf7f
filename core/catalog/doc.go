// Package catalog resolves equipment type identifiers to descriptions.
//
// Descriptions come from the translations of an enumeration property and are
// kept in an expiring in-memory cache. Preload walks every page of the
// enumeration and is a no-op while the previous load is fresh.
package catalog
