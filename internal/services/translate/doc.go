// Package translate converts segment text between languages through an
// OpenAI-compatible chat completion endpoint.
package translate
