package catalog

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchDecodesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Catan","rating":4.2},{"id":"2","title":"Azul"}]`))
	}))
	defer srv.Close()

	games, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(games) != 2 || games[0].ID != "1" || games[1].Title != "Azul" {
		t.Errorf("Fetch() = %+v", games)
	}
	if games[1].Rating != nil {
		t.Errorf("missing rating decoded as %v", *games[1].Rating)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusServiceUnavailable, "", "status 503"},
		{"not json", http.StatusOK, "<html>", "decode catalog"},
		{"not an array", http.StatusOK, `{"games":[]}`, "decode catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Fetch() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Fetch(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "network error") {
		t.Errorf("Fetch() error = %v, want network error", err)
	}
}

func TestFetchImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	got, err := NewClient("", time.Second).FetchImage(context.Background(), srv.URL+"/cover.png")
	if err != nil {
		t.Fatalf("FetchImage() error = %v", err)
	}
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 4x2", b)
	}

	if _, err := NewClient("", time.Second).FetchImage(context.Background(), ""); err == nil {
		t.Errorf("FetchImage(\"\") error = nil")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	if c.URL() != DefaultURL {
		t.Errorf("URL() = %q, want default", c.URL())
	}
	if c.httpClient.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.httpClient.Timeout)
	}
}
