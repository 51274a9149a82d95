package pubsub

// TracingSettings is the part of the application config tracing reads.
type TracingSettings interface {
	GetTracingEnabled() bool
	GetTracingServiceName() string
	GetTracingZipkinURL() string
}

// TracingConfigFrom builds a TracingConfig from the application config,
// keeping defaults for blank values.
func TracingConfigFrom(s TracingSettings) TracingConfig {
	config := DefaultTracingConfig()
	config.Enabled = s.GetTracingEnabled()
	if name := s.GetTracingServiceName(); name != "" {
		config.ServiceName = name
	}
	if url := s.GetTracingZipkinURL(); url != "" {
		config.ZipkinURL = url
	}
	return config
}
