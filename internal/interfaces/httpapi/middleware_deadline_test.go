package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

func newDeadlineServer(t *testing.T, writeTimeout, jobTimeout, work time.Duration) *httptest.Server {
	t.Helper()

	slow := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(work)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	server := httptest.NewUnstartedServer(ExtendWriteDeadline(jobRoutePrefix, jobTimeout, logging.NewNop(), slow))
	server.Config.WriteTimeout = writeTimeout
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func TestExtendWriteDeadline_JobRouteOutlivesServerWriteTimeout(t *testing.T) {
	t.Parallel()

	server := newDeadlineServer(t, 100*time.Millisecond, 5*time.Second, 300*time.Millisecond)

	resp, err := server.Client().Post(server.URL+"/v1/internal/jobs/primary-sync", "application/json", nil)
	if err != nil {
		t.Fatalf("job request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read job response: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(body) != `{"ok":true}` {
		t.Fatalf("unexpected job response: status=%d body=%s", resp.StatusCode, body)
	}
}

func TestExtendWriteDeadline_OtherRoutesKeepServerWriteTimeout(t *testing.T) {
	t.Parallel()

	server := newDeadlineServer(t, 100*time.Millisecond, 5*time.Second, 300*time.Millisecond)

	resp, err := server.Client().Get(server.URL + "/v1/internal/api-stats")
	if err == nil {
		_, err = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if err == nil {
		t.Fatalf("expected the write timeout to cut the response")
	}
}
