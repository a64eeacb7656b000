package obs

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPClient builds the http.Client the CLI injects into the SDK: an
// otel-instrumented transport with optional prometheus recording on top.
// The SDK itself never retries; whatever policy the transport carries is
// the caller's choice.
func NewHTTPClient(timeout time.Duration, metrics *Metrics) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport
	rt = otelhttp.NewTransport(rt)
	if metrics != nil {
		rt = metrics.RoundTripper(rt)
	}
	return &http.Client{Timeout: timeout, Transport: rt}
}
