package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient_DefaultOptions(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{})

	if client == nil {
		t.Fatal("expected non-nil client")
	}
	if client.Timeout != 0 {
		t.Errorf("expected zero timeout, got %v", client.Timeout)
	}
	if client.Transport != nil {
		t.Error("expected nil transport for default options")
	}
}

func TestNewHTTPClient_WithTimeout(t *testing.T) {
	timeout := 30 * time.Second
	client := NewHTTPClient(HTTPClientOptions{
		Timeout: timeout,
	})

	if client.Timeout != timeout {
		t.Errorf("expected timeout %v, got %v", timeout, client.Timeout)
	}
}

func TestNewHTTPClient_WithSkipSSLVerify(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{
		SkipSSLVerify: true,
	})

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify to be true")
	}
}

func TestNewHTTPClient_UserAgentWrapsSkipSSLTransport(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{
		SkipSSLVerify: true,
		UserAgent:     "drafter-test",
	})

	ua, ok := client.Transport.(*userAgentTransport)
	if !ok {
		t.Fatalf("expected *userAgentTransport, got %T", client.Transport)
	}
	inner, ok := ua.base.(*http.Transport)
	if !ok || !inner.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected wrapped transport to skip SSL verification")
	}
}

func TestNewHTTPClient_SetsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPClientOptions{UserAgent: DefaultUserAgent})
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if got != DefaultUserAgent {
		t.Errorf("expected User-Agent %q, got %q", DefaultUserAgent, got)
	}
}

func TestNewHTTPClient_KeepsExplicitUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPClientOptions{UserAgent: DefaultUserAgent})
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("User-Agent", "custom/1.0")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if got != "custom/1.0" {
		t.Errorf("expected explicit User-Agent to survive, got %q", got)
	}
}
