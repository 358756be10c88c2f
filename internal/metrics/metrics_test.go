package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitIdempotent(t *testing.T) {
	// Registering the same collectors twice would panic; Init must
	// guard against repeated calls from multiple binaries' test setups.
	Init()
	Init()
}

func TestPushToGateway(t *testing.T) {
	Init()
	BillsChecked.Inc()

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := PushToGateway(server.URL, "dcbills_monitor"); err != nil {
		t.Fatalf("PushToGateway: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if !strings.HasSuffix(gotPath, "/metrics/job/dcbills_monitor") {
		t.Errorf("path = %q, want job-scoped metrics path", gotPath)
	}
}

func TestPushToGatewayUnreachable(t *testing.T) {
	if err := PushToGateway("http://127.0.0.1:1", "dcbills_discover"); err == nil {
		t.Error("expected error for unreachable gateway")
	}
}
