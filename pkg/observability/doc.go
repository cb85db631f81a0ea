/*
Package observability turns navigation lifecycle events into metrics and logs.

Both Metrics.Hooks and LogHooks return domain.LifecycleHooks, so they can be
combined with LifecycleHooks.Merge and handed to a coordinator or the
session manager.
*/
package observability
