package gcs

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func staticTokenSource(token string) *tokenSource {
	return &tokenSource{
		fetch: func(context.Context) (string, time.Time, error) {
			return token, time.Now().Add(time.Hour), nil
		},
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestUploadObject(t *testing.T) {
	t.Parallel()

	var gotURL, gotAuth, gotContentType, gotBody string
	client := &Client{
		defaultBucket: "intern-fund-media",
		tokenSource:   staticTokenSource("tok-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			gotAuth = req.Header.Get("Authorization")
			gotContentType = req.Header.Get("Content-Type")
			b, _ := io.ReadAll(req.Body)
			gotBody = string(b)
			return jsonResponse(http.StatusOK, `{"name":"campaigns/abc.png"}`), nil
		})},
	}

	name, err := client.UploadObject(context.Background(), "", "campaigns/abc.png", "image/png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("UploadObject returned error: %v", err)
	}
	if name != "campaigns/abc.png" {
		t.Fatalf("unexpected object name %q", name)
	}
	if !strings.Contains(gotURL, "/upload/storage/v1/b/intern-fund-media/o") {
		t.Fatalf("unexpected upload url %q", gotURL)
	}
	if !strings.Contains(gotURL, "name=campaigns%2Fabc.png") {
		t.Fatalf("object name not escaped in url %q", gotURL)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotContentType != "image/png" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if gotBody != "png-bytes" {
		t.Fatalf("body not streamed through, got %q", gotBody)
	}
}

func TestUploadObjectFailure(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "intern-fund-media",
		tokenSource:   staticTokenSource("tok-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusForbidden, `{"error":"denied"}`), nil
		})},
	}

	if _, err := client.UploadObject(context.Background(), "", "obj", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on non-200 upload response")
	}
}

func TestDeleteObjectTreatsNotFoundAsSuccess(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "intern-fund-media",
		tokenSource:   staticTokenSource("tok-123"),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodDelete {
				t.Errorf("unexpected method %s", req.Method)
			}
			return jsonResponse(http.StatusNotFound, `{}`), nil
		})},
	}

	if err := client.DeleteObject(context.Background(), "", "campaigns/gone.png"); err != nil {
		t.Fatalf("missing object should not be an error, got %v", err)
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "intern-fund-media"}
	got := client.PublicURL("", "campaigns/abc.png")
	want := "https://storage.googleapis.com/intern-fund-media/campaigns/abc.png"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestTokenSourceCachesUntilNearExpiry(t *testing.T) {
	t.Parallel()

	calls := 0
	ts := &tokenSource{
		fetch: func(context.Context) (string, time.Time, error) {
			calls++
			return "tok", time.Now().Add(time.Hour), nil
		},
	}

	for i := 0; i < 3; i++ {
		if _, err := ts.Token(context.Background()); err != nil {
			t.Fatalf("Token returned error: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}

	ts.expiry = time.Now().Add(30 * time.Second)
	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch near expiry, got %d calls", calls)
	}
}
