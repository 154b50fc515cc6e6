// Package errhandler is the unified error and log funnel.
//
// Each execution context (the Go host, and the renderer reporting through
// the bridge) owns one Handler built by its composition root. Every event is
// classified by Level and Category, echoed to the console, appended to the
// file log and, for ERROR events, handed to an optional asynchronous
// callback. Sink faults are recovered and counted; nothing in this package
// panics back into the caller.
package errhandler
