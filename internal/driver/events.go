package driver

// Stage names one of the driver's four phases, in the order a run
// always executes them (spec §1 OVERVIEW's load -> scan -> compile ->
// emit pipeline; matches internal/observ's phase names).
type Stage int

const (
	StageLoad Stage = iota
	StageScan
	StageCompile
	StageEmit
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageScan:
		return "scan"
	case StageCompile:
		return "compile"
	case StageEmit:
		return "emit"
	default:
		return "unknown"
	}
}

// Status is one module's (or, for a whole-run event, the pipeline's)
// progress through a Stage.
type Status int

const (
	StatusQueued Status = iota
	StatusRunning
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one progress notification a Run emits as it moves through
// its phases. Module is "" for a phase-wide event (scanning/compiling
// have no natural per-module subdivision the way loading and emitting
// do); Detail carries a short human-readable note (an error message, a
// count) for display.
type Event struct {
	Stage  Stage
	Status Status
	Module string
	Detail string
}

// ProgressSink receives Events as a Run makes progress. A nil sink is
// valid: Run checks before every emit.
type ProgressSink interface {
	Emit(ev Event)
}

// ChannelSink adapts a channel into a ProgressSink, for a caller that
// wants to drive a foreground UI (e.g. internal/ui.NewProgressModel)
// from a Run executing on a background goroutine, pairing a channel
// sink with bubbletea's tea.Program.Send.
type ChannelSink chan Event

func (s ChannelSink) Emit(ev Event) { s <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.Emit(ev)
}
