package domain

import "time"

// SearchOutcome is the terminal result of one search request.
type SearchOutcome string

const (
	OutcomeFound      SearchOutcome = "found"
	OutcomeNoResults  SearchOutcome = "no_results"
	OutcomeUnresolved SearchOutcome = "unresolved"
)

// SearchEvent is published after every search request.
type SearchEvent struct {
	ID          string         `json:"id"`
	Modality    Modality       `json:"modality"`
	Outcome     SearchOutcome  `json:"outcome"`
	Reason      LocationReason `json:"reason,omitempty"`
	ResultCount int            `json:"result_count"`
	Filters     SearchFilters  `json:"filters"`
	EmailSent   bool           `json:"email_sent"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// ResultsEmail is a rendered-on-send summary of search results.
type ResultsEmail struct {
	ID        string           `json:"id"`
	To        string           `json:"to"`
	Label     SearchLabel      `json:"label"`
	Restrooms []RestroomRecord `json:"restrooms"`
}
