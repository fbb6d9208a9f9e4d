package ui

// NoStep means no tutorial step is expanded.
const NoStep = -1

// StepNavigator tracks which tutorial step is expanded. At most one step
// is open at a time.
type StepNavigator struct {
	count   int
	current int
}

// NewStepNavigator creates a navigator over count steps with initial
// expanded (NoStep for none). An out-of-range initial value means none.
func NewStepNavigator(count, initial int) StepNavigator {
	n := StepNavigator{count: count, current: NoStep}
	if initial >= 0 && initial < count {
		n.current = initial
	}
	return n
}

// Toggle expands step i, collapsing any other, or collapses it if it is
// already the expanded one. Indices outside the step list are ignored.
func (n *StepNavigator) Toggle(i int) {
	if i < 0 || i >= n.count {
		return
	}
	if n.current == i {
		n.current = NoStep
		return
	}
	n.current = i
}

// Current returns the expanded step index or NoStep.
func (n StepNavigator) Current() int {
	return n.current
}

// IsExpanded reports whether step i is the expanded one.
func (n StepNavigator) IsExpanded(i int) bool {
	return n.current != NoStep && n.current == i
}

// Len returns the number of steps.
func (n StepNavigator) Len() int {
	return n.count
}
