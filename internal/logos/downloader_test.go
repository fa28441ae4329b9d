package logos_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"streamgap/internal/logos"
	"streamgap/internal/tmdb"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

type staticLister struct {
	list []tmdb.WatchProvider
	err  error
}

func (s staticLister) WatchProviderList(context.Context) ([]tmdb.WatchProvider, error) {
	return s.list, s.err
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/t/p/original/netflix.png":
			_, _ = w.Write(pngBytes)
		case "/t/p/original/hulu":
			_, _ = w.Write(jpegBytes)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "logos")
	lister := staticLister{list: []tmdb.WatchProvider{
		{Name: "Netflix", LogoPath: "/netflix.png"},
		{Name: "Hulu", LogoPath: "/hulu"},
		{Name: "AMC+/Plus", LogoPath: "/gone.png"},
		{Name: "No Logo"},
	}}

	d, err := logos.NewDownloader(lister, server.URL+"/t/p/original/", dir)
	if err != nil {
		t.Fatalf("NewDownloader: %v", err)
	}
	res, err := d.Download(context.Background())
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	want := logos.Result{
		Downloaded: []string{filepath.Join(dir, "Hulu.jpg"), filepath.Join(dir, "Netflix.png")},
		Skipped:    1,
		Failed:     []string{"AMC+/Plus"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("Result mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Netflix.png"))
	if err != nil {
		t.Fatalf("read logo: %v", err)
	}
	if diff := cmp.Diff(pngBytes, data); diff != "" {
		t.Fatalf("logo bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestDownloadListFailure(t *testing.T) {
	d, err := logos.NewDownloader(staticLister{err: errors.New("tmdb down")}, "https://img.example", t.TempDir())
	if err != nil {
		t.Fatalf("NewDownloader: %v", err)
	}
	if _, err := d.Download(context.Background()); err == nil {
		t.Fatal("expected list failure to be returned")
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Netflix":             "Netflix",
		" Apple TV Plus ":     "Apple TV Plus",
		"AMC+/Plus":           "AMC+-Plus",
		`Paramount\Showtime:`: "Paramount-Showtime-",
	}
	for in, want := range tests {
		if got := logos.FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}
