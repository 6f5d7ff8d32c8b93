package utils

// TracingSettings is the OTEL_* environment shared by the exporter setup and
// the gin middleware.
type TracingSettings struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

func NewTracingSettings() TracingSettings {
	return TracingSettings{
		Enabled:     GetEnvBool("OTEL_TRACES_ENABLED", false),
		ServiceName: GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", "teamup-site"),
		Endpoint:    GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}
}
