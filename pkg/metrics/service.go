package metrics

// ServiceMetrics is the set of metrics exported by the string service.
type ServiceMetrics struct {
	// RequestsTotal counts HTTP requests. Labels: method, route, status.
	RequestsTotal *Counter

	// RequestDuration tracks request latency in seconds. Labels: method, route.
	RequestDuration *Histogram

	// StringsStored reports the store size when read.
	StringsStored *GaugeFunc

	// ConflictsTotal counts inserts rejected because the value already existed.
	ConflictsTotal *Counter
}

// NewServiceMetrics registers the service metrics on reg. storedCount is
// called on every scrape of stringd_strings_stored.
func NewServiceMetrics(reg *Registry, storedCount func() int) *ServiceMetrics {
	return &ServiceMetrics{
		RequestsTotal: reg.NewCounter("stringd_http_requests_total",
			"Total number of HTTP requests.", "method", "route", "status"),
		RequestDuration: reg.NewHistogram("stringd_http_request_duration_seconds",
			"HTTP request duration in seconds.", DefaultBuckets, "method", "route"),
		StringsStored: reg.NewGaugeFunc("stringd_strings_stored",
			"Number of strings currently stored.",
			func() float64 { return float64(storedCount()) }),
		ConflictsTotal: reg.NewCounter("stringd_string_conflicts_total",
			"Number of create requests rejected as duplicates."),
	}
}
