// Package mcp exposes longboard sessions to LLM agents through the Model
// Context Protocol. Every tool call runs under the session manager's
// per-document lock.
package mcp
