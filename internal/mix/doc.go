// Package mix sums per-segment dubbed clips into one loudness-normalized
// composite audio track aligned to the source timeline.
package mix
