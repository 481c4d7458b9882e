// Package align fits synthesized speech clips into their segments' time
// budgets using bounded tempo stretching with a truncation fallback.
package align
