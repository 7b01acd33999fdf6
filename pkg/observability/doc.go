/*
Package observability turns engine lifecycle events into Prometheus metrics
and structured log records.

Both are exposed as domain.LifecycleHooks, so they can be merged and handed
to any engine option that accepts hooks.
*/
package observability
