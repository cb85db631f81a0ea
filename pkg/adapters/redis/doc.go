// Package redis persists document navigation state in Redis and provides a
// Redis-backed distributed lock for the session manager.
package redis
