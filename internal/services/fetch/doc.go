// Package fetch acquires remote video sources through yt-dlp.
package fetch
