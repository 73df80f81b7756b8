package mux

import (
	"fmt"
	"strings"
	"time"
)

// ActivitySummary is what a pane did since the user last viewed it.
type ActivitySummary struct {
	PaneID string
	Title  string
	// Since is zero when the pane was never viewed.
	Since   time.Time
	Elapsed time.Duration
	Events  []ActivityEvent
	Counts  map[ActivityKind]int
}

var summaryLabels = []struct {
	kind             ActivityKind
	singular, plural string
}{
	{ActivityInput, "input", "inputs"},
	{ActivityAgent, "agent started", "agents started"},
	{ActivityState, "state change", "state changes"},
	{ActivityExited, "exit", "exits"},
	{ActivitySpawnFailed, "error", "errors"},
	{ActivityCreated, "start", "starts"},
}

// Line condenses the counts, e.g. "3 inputs, 1 exit".
func (a ActivitySummary) Line() string {
	var parts []string
	for _, l := range summaryLabels {
		n := a.Counts[l.kind]
		switch {
		case n == 1:
			parts = append(parts, "1 "+l.singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, l.plural))
		}
	}
	if len(parts) == 0 {
		return "No significant activity"
	}
	return strings.Join(parts, ", ")
}

// ActivitySummary collects the events recorded for pane id after its
// LastViewedAt.
func (s *State) ActivitySummary(id string) (ActivitySummary, bool) {
	p := s.panes[id]
	if p == nil {
		return ActivitySummary{}, false
	}
	sum := ActivitySummary{
		PaneID: p.ID,
		Title:  p.Title(),
		Since:  p.LastViewedAt,
		Counts: map[ActivityKind]int{},
	}
	for _, ev := range p.Activity() {
		if !ev.At.After(p.LastViewedAt) {
			continue
		}
		sum.Events = append(sum.Events, ev)
		sum.Counts[ev.Kind]++
	}
	if !sum.Since.IsZero() {
		sum.Elapsed = s.now().Sub(sum.Since)
	}
	return sum, true
}

// ActivityOffset is the index of the first event the summary shows.
func (s *State) ActivityOffset() int { return s.activityOffset }

func (s *State) scrollActivity(lines int) {
	sum, ok := s.ActivitySummary(s.selected)
	if !ok {
		s.activityOffset = 0
		return
	}
	s.activityOffset = min(max(s.activityOffset+lines, 0), max(len(sum.Events)-1, 0))
}
