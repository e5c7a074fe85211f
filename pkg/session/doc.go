/*
Package session owns the rescue flow of a host.

The Manager keeps at most one active flow, archives the record when a flow is
completed and discards everything when it is aborted. With a
ports.DistributedLocker the single-flow rule also holds across processes that
share the same storage.
*/
package session
