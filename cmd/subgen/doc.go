// Command subgen resolves media locations (files, directories, remote URLs)
// into local audio and produces subtitle files with WhisperX.
package main
