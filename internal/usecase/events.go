package usecase

// State names one stage of a run. Done, ParseFailed and PipelineFailed
// are terminal.
type State int

const (
	StateIdle State = iota
	StateDetecting
	StateExtracting
	StateValidating
	StateCutting
	StateAssembling
	StateDone
	StateParseFailed
	StatePipelineFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetecting:
		return "detecting"
	case StateExtracting:
		return "extracting"
	case StateValidating:
		return "validating"
	case StateCutting:
		return "cutting"
	case StateAssembling:
		return "assembling"
	case StateDone:
		return "done"
	case StateParseFailed:
		return "parse-failed"
	case StatePipelineFailed:
		return "pipeline-failed"
	default:
		return "unknown"
	}
}

// Event is one entry in the ordered progress stream of a run. During
// cutting, Done and Total carry per-segment progress counts.
type Event struct {
	State   State
	Message string
	Done    int
	Total   int
}
