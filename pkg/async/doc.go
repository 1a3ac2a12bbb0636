// Package async provides generic futures for fan-out work.
//
// The email service uses it in two places: fetching independent context
// sub-aggregates concurrently while preparing an email context, and batch
// rendering, where Settle gives Promise.allSettled-style semantics so each
// recipient's outcome is reported independently.
package async
