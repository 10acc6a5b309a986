package cli

// PreflightError describes a failed command precondition along with how
// to proceed.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\nHint: " + e.Hint
	}
	if e.NextStep != "" {
		msg += "\nNext: " + e.NextStep
	}
	return msg
}
