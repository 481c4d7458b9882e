// Package services holds the error taxonomy and command execution helpers
// shared by the external collaborators (fetch, whisper, translate, tts).
package services
