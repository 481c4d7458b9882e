// Package tts synthesizes speech clips from translated text using the
// edge-tts command line tool.
package tts
