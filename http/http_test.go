package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "not found",
			err: &APIError{
				Service:    "trello",
				StatusCode: 404,
				Message:    "card not found",
				Endpoint:   "/1/cards/abc",
			},
			wantMsg:    "trello API error (404) at /1/cards/abc: card not found",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "with request ID",
			err: &APIError{
				Service:    "github",
				StatusCode: 500,
				Message:    "internal error",
				Endpoint:   "/repos",
				RequestID:  "abc123",
			},
			wantMsg:    "github API error (500) at /repos [abc123]: internal error",
			wantUnwrap: ErrServerError,
		},
		{
			name: "unauthorized",
			err: &APIError{
				Service:    "trello",
				StatusCode: 401,
				Message:    "invalid key",
				Endpoint:   "/1/members/me",
			},
			wantMsg:    "trello API error (401) at /1/members/me: invalid key",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name: "rate limited",
			err: &APIError{
				Service:    "trello",
				StatusCode: 429,
				Message:    "too many requests",
				Endpoint:   "/1/cards",
			},
			wantMsg:    "trello API error (429) at /1/cards: too many requests",
			wantUnwrap: ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantUnwrap) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantUnwrap)
			}
		})
	}
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/widgets/1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"name": "widget"})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "test"})

	var result struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/widgets/1", &result); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if result.Name != "widget" {
		t.Errorf("Name = %q", result.Name)
	}
}

func TestClient_BeforeRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "k1" {
			t.Errorf("query key = %q, want k1", r.URL.Query().Get("key"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "test",
		BeforeRequest: func(req *http.Request) {
			q := req.URL.Query()
			q.Set("key", "k1")
			req.URL.RawQuery = q.Encode()
		},
	})

	if err := c.Get(context.Background(), "/auth", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestClient_RetriesServerError(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "test",
		MaxRetries:  3,
		RetryWait:   time.Millisecond,
	})

	if err := c.Get(context.Background(), "/flaky", nil); err != nil {
		t.Fatalf("Get after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"gone"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "test"})

	err := c.Get(context.Background(), "/missing", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Message != "gone" || apiErr.StatusCode != 404 {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should be true")
	}
}

func TestClient_PlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid id"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "test"})

	err := c.Get(context.Background(), "/bad", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Message != "invalid id" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestCollect(t *testing.T) {
	pages := map[string][]int{
		"":  {1, 2},
		"2": {3, 4},
		"4": {5},
	}
	next := map[string]string{"": "2", "2": "4", "4": ""}

	fetch := func(ctx context.Context, cursor string) ([]int, string, error) {
		return pages[cursor], next[cursor], nil
	}

	all, err := Collect(context.Background(), fetch, 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(all) != 5 || all[4] != 5 {
		t.Errorf("all = %v", all)
	}

	capped, err := Collect(context.Background(), fetch, 2)
	if err != nil {
		t.Fatalf("Collect capped: %v", err)
	}
	if len(capped) != 4 {
		t.Errorf("capped = %v", capped)
	}
}

func TestCollect_Error(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(ctx context.Context, cursor string) ([]int, string, error) {
		if cursor == "" {
			return []int{1}, "next", nil
		}
		return nil, "", boom
	}

	all, err := Collect(context.Background(), fetch, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("partial results = %v", all)
	}
}
