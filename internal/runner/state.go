package runner

// State is the lifecycle state of a single stage within a run.
type State int

const (
	// Pending means the stage has not been picked up yet.
	Pending State = iota
	// Running means the stage is currently executing.
	Running
	// Done means the stage executed successfully.
	Done
	// Skipped means the stage did not execute and the run continued: either
	// an optional script was missing, or an earlier stage failed.
	Skipped
	// Failed means the stage errored and terminated the run.
	Failed
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
