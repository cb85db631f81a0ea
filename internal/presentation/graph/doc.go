// Package graph renders design spaces as Mermaid charts.
package graph
