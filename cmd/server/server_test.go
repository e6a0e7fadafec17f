package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/agent-meet/pkg/lifecycle"
)

func TestBuildRouter_Probes(t *testing.T) {
	lc := lifecycle.New()
	router := buildRouter(lc)

	probe := func(path string) (int, string) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code, w.Body.String()
	}

	if code, body := probe("/healthz"); code != http.StatusOK || body != "OK" {
		t.Errorf("healthz = %d %q", code, body)
	}
	if code, body := probe("/readyz"); code != http.StatusServiceUnavailable || body != "NOT READY" {
		t.Errorf("readyz before startup = %d %q", code, body)
	}

	lc.WaitForStartup()

	if code, body := probe("/readyz"); code != http.StatusOK || body != "READY" {
		t.Errorf("readyz after startup = %d %q", code, body)
	}
}
