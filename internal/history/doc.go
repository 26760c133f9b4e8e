// Package history persists run summaries and the download journal in a
// SQLite database so repeated invocations can reuse prior fetches and the
// history command can report past activity.
package history
