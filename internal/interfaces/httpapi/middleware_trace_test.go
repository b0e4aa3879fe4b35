package httpapi

import "testing"

func TestShouldTraceRequest_OperationalPaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", " /healthz ", "/metrics"}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_InternalRoutes(t *testing.T) {
	paths := []string{"/v1/internal/jobs/primary-sync", "/v1/internal/api-stats", "/"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}
