// Package freshness implements the timestamp comparison that decides whether
// a derived artifact (extracted audio, subtitle file) can be reused instead
// of regenerated.
package freshness
