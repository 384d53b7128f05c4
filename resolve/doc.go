// Package resolve implements the multi-strategy field resolution used to
// read logical task fields (status, priority, dates) out of raw backend
// records.
//
// Each field is resolved by an explicit ordered cascade: backend typed
// property, configured custom property, inline-field bag, legacy emoji
// shorthand in the raw text (dates only), then bracketed [key::value]
// syntax. The first strategy that yields a value wins; a field nothing
// resolves is simply absent. Invalid dates and priority tokens are treated
// as absent, never surfaced as errors.
package resolve
