package telemetry

// Span attribute keys shared across packages.
const (
	AttrModality    = "search.modality"
	AttrResultCount = "search.results"
	AttrProvider    = "provider.name"
	AttrDialogState = "session.state"
)
