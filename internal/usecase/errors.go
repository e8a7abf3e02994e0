package usecase

import "fmt"

// ExtractionError reports a segment whose cut failed after both the
// stream-copy and re-encode attempts.
type ExtractionError struct {
	Index int
	Title string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract segment %d %q: %v", e.Index, e.Title, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// AssemblyError reports a failed final concatenation. No output
// artifact exists when it is returned.
type AssemblyError struct {
	Err error
}

func (e *AssemblyError) Error() string { return fmt.Sprintf("assemble reel: %v", e.Err) }

func (e *AssemblyError) Unwrap() error { return e.Err }
