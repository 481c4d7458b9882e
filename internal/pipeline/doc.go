// Package pipeline sequences the dubbing stages for a job and fans a shared
// transcription out across target languages.
//
// Stage order is fixed: acquire, transcribe, translate, synthesize, align,
// mix, mux. Per-segment translation and synthesis failures are local (the
// segment is silent in the mix); stage failures are fatal for the current
// language only.
package pipeline
