package store

import (
	"sort"

	"go.uber.org/zap"
)

// Registry records names that have already been seen. It is owned by the
// caller; a Tracker only ever adds to it.
type Registry map[string]bool

func (r Registry) Has(name string) bool {
	_, exists := r[name]
	return exists
}

func (r Registry) Len() int {
	return len(r)
}

// Names returns the recorded names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Tracker struct {
	logger *zap.Logger
}

func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{logger: logger}
}

// CheckVoter records name in voted and returns true the first time a name is
// seen. A repeat is logged and rejected without touching voted. voted must be
// non-nil.
func (t *Tracker) CheckVoter(voted Registry, name string) bool {
	if voted.Has(name) {
		t.logger.Info("kick them out!", zap.String("name", name))
		return false
	}

	voted[name] = true
	return true
}

// CheckVoter is Tracker.CheckVoter using the process-wide logger. voted must
// be non-nil.
func CheckVoter(voted Registry, name string) bool {
	return NewTracker(zap.L()).CheckVoter(voted, name)
}
