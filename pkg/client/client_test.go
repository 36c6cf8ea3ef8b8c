package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getmockd/stringd/pkg/api"
	"github.com/getmockd/stringd/pkg/query"
)

// --- Helpers ---

func newServer(t *testing.T) *Client {
	t.Helper()
	a, err := api.NewAPI()
	if err != nil {
		t.Fatalf("NewAPI() error = %v", err)
	}
	ts := httptest.NewServer(a.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func rawServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

// --- New / Options Tests ---

func TestNew(t *testing.T) {
	c := New("http://localhost:8080/")
	if c.BaseURL() != "http://localhost:8080" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.BaseURL())
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("default timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
}

func TestNew_Options(t *testing.T) {
	c := New("http://localhost:8080", WithTimeout(5*time.Second))
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.httpClient.Timeout)
	}

	hc := &http.Client{}
	c = New("http://localhost:8080", WithHTTPClient(hc))
	if c.httpClient != hc {
		t.Error("WithHTTPClient did not replace the client")
	}
}

// --- Round trips against a real handler ---

func TestClient_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	rec, err := c.Create(ctx, "Racecar")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Value != "racecar" || !rec.Properties.IsPalindrome {
		t.Errorf("Create() = %+v, want palindrome racecar", rec)
	}

	if _, err := c.Create(ctx, "RACECAR"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}

	got, err := c.Get(ctx, "racecar")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("Get().ID = %q, want %q", got.ID, rec.ID)
	}

	list, err := c.Query(ctx, query.Criteria{
		IsPalindrome:      true,
		MinLength:         1,
		MaxLength:         10,
		WordCount:         1,
		ContainsCharacter: 'c',
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != rec.ID {
		t.Errorf("Query() = %v, want one racecar record", list)
	}

	h, err := c.Health(ctx)
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.Status != "ok" || h.Strings != 1 {
		t.Errorf("Health() = %+v", h)
	}

	if err := c.Delete(ctx, "Racecar"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(ctx, "racecar"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := c.Delete(ctx, "racecar"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestClient_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	_, err := c.Create(ctx, "   ")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(blank) error = %v, want ErrValidation", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "empty_value" {
		t.Errorf("APIError = %+v", apiErr)
	}

	_, err = c.Query(ctx, query.Criteria{})
	if !errors.As(err, &apiErr) {
		t.Fatalf("Query(zero) error = %v, want *APIError", err)
	}
	if apiErr.Code != "validation_failed" || len(apiErr.Details) == 0 {
		t.Errorf("APIError = %+v, want validation_failed with details", apiErr)
	}
}

func TestClient_NonJSONError(t *testing.T) {
	c := rawServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "request failed: status 502" {
		t.Errorf("error = %q", err.Error())
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrValidation) {
		t.Error("502 must not match a sentinel")
	}
}

func TestClient_ConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, WithTimeout(time.Second)).Health(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
}
