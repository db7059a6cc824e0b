// Package host connects the tunnel supervisor to an application that embeds
// it: command-line flag translation, lifecycle hooks, and the periodic
// status refresh consumed by a display.
package host
