package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldGenerationID is the caption generation ID
	FieldGenerationID = "generation_id"

	// FieldMode is the generation mode (text or image)
	FieldMode = "mode"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldModel is the upstream model name
	FieldModel = "model"

	// FieldCaptionID is the caption record ID
	FieldCaptionID = "caption_id"

	// FieldVariant is the caption variant (short, medium, long)
	FieldVariant = "variant"
)
