package httpclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetDefaultClient(t *testing.T) {
	client := GetDefaultClient()
	if client == nil {
		t.Fatal("Expected client to not be nil")
	}
	if client.Timeout != 0 {
		t.Errorf("Expected no client timeout, got %v", client.Timeout)
	}
	if GetDefaultClient() != client {
		t.Errorf("Expected singleton client instance")
	}
}

func TestSetDefaultClientForTesting(t *testing.T) {
	custom := &http.Client{}
	restore := SetDefaultClientForTesting(custom)
	if GetDefaultClient() != custom {
		t.Fatalf("expected override client")
	}
	restore()
	if GetDefaultClient() == custom {
		t.Fatalf("expected override to be restored")
	}
}

func TestNewClient(t *testing.T) {
	customTimeout := 5 * time.Second
	client := NewClient(customTimeout)
	if client.Timeout != customTimeout {
		t.Errorf("Expected timeout to be %v, got %v", customTimeout, client.Timeout)
	}
	lt, ok := client.Transport.(*limitTransport)
	if !ok {
		t.Fatalf("Expected transport to be *limitTransport")
	}
	transport, ok := lt.base.(*http.Transport)
	if !ok || transport == nil {
		t.Fatalf("Expected base transport to be *http.Transport")
	}
	if transport.MaxIdleConnsPerHost != MaxIdleConnsPerHost {
		t.Errorf("Expected MaxIdleConnsPerHost to be %d, got %d", MaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	}
	if transport.TLSHandshakeTimeout != TLSHandshakeTimeout {
		t.Errorf("Expected TLSHandshakeTimeout to be %v, got %v", TLSHandshakeTimeout, transport.TLSHandshakeTimeout)
	}
}

func TestClient_ReadsBody(t *testing.T) {
	expectedBody := "hello world"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, expectedBody)
	}))
	defer server.Close()

	resp, err := NewClient(time.Second).Get(server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(body) != expectedBody {
		t.Errorf("Expected body %q, got %q", expectedBody, string(body))
	}
}

func TestClient_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Chunked encoding so ContentLength is unknown.
		w.(http.Flusher).Flush()
		chunk := strings.Repeat("a", 1024*1024)
		for i := 0; i < 9; i++ {
			fmt.Fprint(w, chunk)
		}
	}))
	defer server.Close()

	resp, err := NewClient(5 * time.Second).Get(server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()
	_, err = io.ReadAll(resp.Body)
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}
}

func TestClient_DeclaredLengthTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(MaxResponseBytes+1))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewClient(time.Second).Get(server.URL)
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}
}
