package engine

import "sync"

// Stats is an optional shared counter bag. A nil *Stats is a legal no-op:
// every method on it tolerates a nil receiver so callers never need a
// conditional just to skip instrumentation.
type Stats struct {
	mu               sync.Mutex
	numNodes         int
	numUsagesPerNode map[string]int
	numCompsPerNode  map[string]int
}

// NewStats constructs an empty, ready-to-use Stats sink.
func NewStats() *Stats {
	return &Stats{
		numUsagesPerNode: map[string]int{},
		numCompsPerNode:  map[string]int{},
	}
}

// AddNode records one more node having been built during prepare.
func (s *Stats) AddNode() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.numNodes++
}

// AddUsages records that name's usage snippet mentioned count sites.
func (s *Stats) AddUsages(name string, count int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.numUsagesPerNode[name] += count
}

// AddComps records that name produced count woven candidates at a level.
func (s *Stats) AddComps(name string, count int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.numCompsPerNode[name] += count
}

// Snapshot returns a point-in-time copy of the counters, safe to read
// without further synchronization.
func (s *Stats) Snapshot() (numNodes int, usagesPerNode, compsPerNode map[string]int) {
	if s == nil {
		return 0, map[string]int{}, map[string]int{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	usages := make(map[string]int, len(s.numUsagesPerNode))
	for k, v := range s.numUsagesPerNode {
		usages[k] = v
	}
	comps := make(map[string]int, len(s.numCompsPerNode))
	for k, v := range s.numCompsPerNode {
		comps[k] = v
	}
	return s.numNodes, usages, comps
}
