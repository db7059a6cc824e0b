// Package procutil holds the per-platform bits of running the tunnel client:
// process attributes applied before start and a best-effort terminate.
package procutil
