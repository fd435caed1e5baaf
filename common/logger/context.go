package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context: set them once where an analysis begins and every log
// statement downstream carries them.
type LogFields struct {
	AppID      *string // store listing identifier the analysis runs for
	AnalysisID *int64  // snowflake ID of the analysis run
	Region     *string // storefront region code
	Platform   *string // "ios" or "android"
	Component  string  // component name, e.g. "insight.engine"
}

// WithLogFields enriches context with structured log fields. Multiple calls
// merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context, empty if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, update LogFields) LogFields {
	result := existing

	if update.AppID != nil {
		result.AppID = update.AppID
	}
	if update.AnalysisID != nil {
		result.AnalysisID = update.AnalysisID
	}
	if update.Region != nil {
		result.Region = update.Region
	}
	if update.Platform != nil {
		result.Platform = update.Platform
	}
	if update.Component != "" {
		result.Component = update.Component
	}

	return result
}
