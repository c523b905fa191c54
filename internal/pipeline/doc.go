// Package pipeline orchestrates the normalize -> recognize -> transcode flow
// as a single job and exports its text results.
//
// A Runner holds one recognition facade and admits at most one job at a time;
// a second submission while a job is in flight is rejected with ErrBusy
// rather than queued. Jobs can run synchronously (Run) or on their own
// goroutine with start/completion/failure notifications (Start). The stages
// themselves are pure functions over their inputs, so nothing is shared
// between consecutive jobs.
package pipeline
