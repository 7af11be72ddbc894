// Package audiofilter attaches notch and resonance filters to telephony
// channels and manages their lifetime.
//
// Each channel holds at most one filter of each kind. The first
// configuration designs the filter, stores it in the channel's datastore and
// attaches an audio hook; later configurations swap in a freshly designed
// runtime with zeroed history behind the same hook; removal or hangup detaches
// the hook and releases the filter exactly once.
//
// Every lifecycle transition runs under the channel lock. The hook itself
// never takes it: it loads the current runtime through an atomic pointer.
package audiofilter
