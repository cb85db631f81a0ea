// Package tui holds the terminal niceties of the CLI: banner, colours and
// markdown rendering.
package tui
