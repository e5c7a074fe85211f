/*
Package observability turns the lifecycle hooks of the coaching engine into
Prometheus metrics and structured log lines.

Hooks from several sources are fanned out with Combine, so a host can log and
count the same events.
*/
package observability
