package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldSessionID = "session_id"
	FieldFilename  = "filename"
	FieldImported  = "rows_imported"
	FieldDropped   = "rows_dropped"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentSession = "session"
	ComponentIngest  = "ingest"
	ComponentExport  = "export"
	ComponentAI      = "ai"
)
