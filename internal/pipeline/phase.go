package pipeline

// Phase is a step of a report run
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseFiltering
	PhaseEnriching
	PhaseReportPosted
	PhaseDetailsPosting
	PhaseDone
	PhaseFailed
)

var phaseNames = map[Phase]string{
	PhaseIdle:           "idle",
	PhaseFetching:       "fetching",
	PhaseFiltering:      "filtering",
	PhaseEnriching:      "enriching",
	PhaseReportPosted:   "report_posted",
	PhaseDetailsPosting: "details_posting",
	PhaseDone:           "done",
	PhaseFailed:         "failed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}
