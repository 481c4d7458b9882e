// Package language is the supported-language table: BCP-47 tags, display
// names, whisper codes, and default synthesis voices.
package language
