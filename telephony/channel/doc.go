// Package channel is the boundary between the filters and the host that
// carries a call's media.
//
// A Channel owns a lock, a key/value datastore with destructors, and a list of
// audio hooks that see every voice frame tagged with its direction. Memory is
// an in-process implementation used by tests and the chanfilter command.
package channel
