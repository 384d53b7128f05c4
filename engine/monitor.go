package engine

import "github.com/poiesic/tasklens/core"

// QueryMonitor provides hooks to observe the stages of one query.
// Implement this interface to track intermediate steps and results.
type QueryMonitor interface {
	Start(spec core.FilterSpec)
	BackendSelected(name string)
	QueryCompiled(query string)
	AfterExecute(records int)
	AfterFilter(records int)
	AfterNormalize(tasks []core.Task)
	Finish(tasks []core.Task)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.FilterSpec)       {}
func (n *noopMonitor) BackendSelected(_ string)      {}
func (n *noopMonitor) QueryCompiled(_ string)        {}
func (n *noopMonitor) AfterExecute(_ int)            {}
func (n *noopMonitor) AfterFilter(_ int)             {}
func (n *noopMonitor) AfterNormalize(_ []core.Task)  {}
func (n *noopMonitor) Finish(_ []core.Task)          {}
