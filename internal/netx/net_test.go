package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchURL(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("file body"))
		}))
		defer ts.Close()

		body, err := FetchURL(context.Background(), ts.Client(), ts.URL+"/some/presigned?X-Amz-Signature=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if string(body) != "file body" {
			t.Fatalf("body = %q", string(body))
		}
	})

	t.Run("non-200 is an error with body excerpt", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("expired signature"))
		}))
		defer ts.Close()

		_, err := FetchURL(context.Background(), ts.Client(), ts.URL)
		if err == nil {
			t.Fatal("want error")
		}
		if !strings.Contains(err.Error(), "expired signature") {
			t.Fatalf("error missing body excerpt: %v", err)
		}
	})

	t.Run("nil client uses default", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		if _, err := FetchURL(context.Background(), nil, ts.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
