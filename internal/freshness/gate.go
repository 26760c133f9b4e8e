package freshness

import "os"

// UpToDate reports whether the derived artifact can be reused: it must exist
// and its last-modified timestamp must strictly exceed the source's. Equal
// timestamps regenerate, so a derived file written in the same clock tick as
// its source is never trusted.
//
// The same gate guards both transcoding (video -> mp3) and transcription
// (audio -> subtitle); force flags are applied by the caller, not here.
func UpToDate(source, derived string) bool {
	derivedInfo, err := os.Stat(derived)
	if err != nil {
		return false
	}
	sourceInfo, err := os.Stat(source)
	if err != nil {
		return false
	}
	return derivedInfo.ModTime().After(sourceInfo.ModTime())
}
