package domain

// ProgressStep is one node of the customer-facing linear progress widget.
type ProgressStep struct {
	Key   AssignmentStatus
	Label string
	Order float64
}

// progressSteps maps each progressing status onto a display order.
// waiting_for_parts sits between in_progress and completed: work has started
// but is blocked, so it renders as a side-branch message, not a fourth node.
// on_hold and cancelled are deliberately absent; see SuspendsProgress.
var progressSteps = []ProgressStep{
	{Key: StatusNewRequest, Label: "Request Received", Order: 1},
	{Key: StatusWorkStarted, Label: "Work Started", Order: 2},
	{Key: StatusInProgress, Label: "In Progress", Order: 3},
	{Key: StatusWaitingForParts, Label: "Waiting", Order: 3.5},
	{Key: StatusCompleted, Label: "Completed", Order: 4},
}

// ProgressSteps returns the full step table, waiting side-branch included.
func ProgressSteps() []ProgressStep {
	steps := make([]ProgressStep, len(progressSteps))
	copy(steps, progressSteps)
	return steps
}

// BarSteps returns the steps rendered as progress-bar nodes, which excludes
// the waiting_for_parts side branch.
func BarSteps() []ProgressStep {
	steps := make([]ProgressStep, 0, len(progressSteps)-1)
	for _, step := range progressSteps {
		if step.Key == StatusWaitingForParts {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// StepOrder maps a status onto its progress position. Statuses with no step
// entry (on_hold, cancelled, anything unrecognized) map to 0.
func StepOrder(status AssignmentStatus) float64 {
	for _, step := range progressSteps {
		if step.Key == status {
			return step.Order
		}
	}
	return 0
}

// IsStepActive reports whether a step renders filled for the given status.
func IsStepActive(status AssignmentStatus, step ProgressStep) bool {
	return StepOrder(status) >= step.Order
}

// SuspendsProgress reports whether a status suspends progress rendering
// entirely; consumers show a static banner instead of the bar.
func SuspendsProgress(status AssignmentStatus) bool {
	return status == StatusOnHold || status == StatusCancelled
}
