package session

import "time"

// Coordinator tracks the two loop cadences: a fast one bounding input
// latency and a slow one bounding how often the service list is fetched.
type Coordinator struct {
	inputCadence time.Duration
	dataCadence  time.Duration
	lastInput    time.Time
	lastData     time.Time
}

// NewCoordinator starts both cadences at now.
func NewCoordinator(inputCadence, dataCadence time.Duration, now time.Time) *Coordinator {
	return &Coordinator{
		inputCadence: inputCadence,
		dataCadence:  dataCadence,
		lastInput:    now,
		lastData:     now,
	}
}

// DataDue reports whether the service list should be fetched again.
func (c *Coordinator) DataDue(now time.Time) bool {
	return now.Sub(c.lastData) >= c.dataCadence
}

// MarkData records a list fetch attempt, successful or not.
func (c *Coordinator) MarkData(now time.Time) {
	c.lastData = now
}

// ForceRefresh makes the next DataDue call return true.
func (c *Coordinator) ForceRefresh() {
	c.lastData = time.Time{}
}

// MarkInput starts a new input slice at now.
func (c *Coordinator) MarkInput(now time.Time) {
	c.lastInput = now
}

// InputWait returns how much of the current input slice is left.
func (c *Coordinator) InputWait(now time.Time) time.Duration {
	return max(0, c.inputCadence-now.Sub(c.lastInput))
}
