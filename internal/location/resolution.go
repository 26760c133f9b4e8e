package location

type resolutionKind int

const (
	kindUnhandled resolutionKind = iota
	kindFile
	kindExpand
)

// Resolution is the outcome of applying one resolver to one location: a
// final audio/video file, a set of further locations to resolve, or a
// declination. An Expand with zero locations is a valid, handled outcome
// (an empty directory), distinct from Unhandled.
type Resolution struct {
	kind      resolutionKind
	path      string
	locations []string
}

// File finalizes a location into a single local media file path.
func File(path string) Resolution {
	return Resolution{kind: kindFile, path: path}
}

// Expand replaces a location with further locations to resolve.
func Expand(locations []string) Resolution {
	return Resolution{kind: kindExpand, locations: locations}
}

// Unhandled declines a location.
func Unhandled() Resolution {
	return Resolution{kind: kindUnhandled}
}

// IsFile reports whether the resolution finalized a file, returning its path.
func (r Resolution) IsFile() (string, bool) {
	return r.path, r.kind == kindFile
}

// IsExpand reports whether the resolution produced further locations.
func (r Resolution) IsExpand() ([]string, bool) {
	return r.locations, r.kind == kindExpand
}

// IsUnhandled reports whether the resolver declined the location.
func (r Resolution) IsUnhandled() bool {
	return r.kind == kindUnhandled
}
