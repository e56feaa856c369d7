package reporter

// CompositeReporter fans every event out to a set of child reporters,
// the way a session wires a TerminalReporter and an optional
// LogReporter together.
type CompositeReporter struct {
	children []Reporter
}

// NewCompositeReporter combines reporters into one. Nil entries are
// skipped so callers can pass an optional LogReporter directly.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	c := &CompositeReporter{}
	for _, r := range reporters {
		if r != nil {
			c.children = append(c.children, r)
		}
	}
	return c
}

func (c *CompositeReporter) Startup(info StartupInfo) {
	for _, r := range c.children {
		r.Startup(info)
	}
}

func (c *CompositeReporter) CycleStarted(source string) {
	for _, r := range c.children {
		r.CycleStarted(source)
	}
}

func (c *CompositeReporter) LoadProgress(percent float64) {
	for _, r := range c.children {
		r.LoadProgress(percent)
	}
}

func (c *CompositeReporter) LoadComplete() {
	for _, r := range c.children {
		r.LoadComplete()
	}
}

func (c *CompositeReporter) CycleError(stage, message string) {
	for _, r := range c.children {
		r.CycleError(stage, message)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.children {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Shutdown(message string) {
	for _, r := range c.children {
		r.Shutdown(message)
	}
}

var _ Reporter = (*CompositeReporter)(nil)
