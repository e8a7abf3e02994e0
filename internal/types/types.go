package types

import "github.com/reelcut/reelcut/internal/domain/timecode"

// RawSegment is one outline entry as written, before validation.
type RawSegment struct {
	Title string
	Start timecode.Seconds
	Span  timecode.Seconds
}

// Segment is a validated cut. Index is the entry's position in the
// outline; within a Plan the segments are ordered by start time.
type Segment struct {
	Index    int              `json:"index"`
	Title    string           `json:"title"`
	Start    timecode.Seconds `json:"start_sec"`
	Duration timecode.Seconds `json:"duration_sec"`
}

type SourceVideo struct {
	Path     string           `json:"path"`
	Duration timecode.Seconds `json:"duration_sec"`
}

type Plan struct {
	Source   SourceVideo `json:"source"`
	Segments []Segment   `json:"segments"`
}
