package logging

// Standardized attribute keys shared across the pipeline so log lines
// from different components stay correlatable.
const (
	FieldComponent = "component"
	FieldStage     = "stage"
	FieldJobID     = "job_id"
	FieldLanguage  = "language"
	FieldSegment   = "segment"
)
