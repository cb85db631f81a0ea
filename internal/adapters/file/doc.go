// Package file persists document navigation state as JSON files.
package file
