package logos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sourcegraph/conc/pool"

	"streamgap/internal/fileutil"
	"streamgap/internal/httpx"
	"streamgap/internal/logging"
	"streamgap/internal/textutil"
	"streamgap/internal/tmdb"
)

const (
	maxLogoBytes   = 8 << 20
	defaultWorkers = 4
	fallbackExt    = ".png"
)

// Lister lists the providers whose logos should be fetched.
type Lister interface {
	WatchProviderList(ctx context.Context) ([]tmdb.WatchProvider, error)
}

var _ Lister = (*tmdb.Client)(nil)

// Result summarizes a download run.
type Result struct {
	Downloaded []string `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Failed     []string `json:"failed"`
}

// Downloader fetches provider logos.
type Downloader struct {
	lister       Lister
	imageBaseURL string
	dir          string
	httpClient   *http.Client
	workers      int
	logger       *slog.Logger
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient overrides the client used for image downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Downloader) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// WithWorkers bounds concurrent downloads.
func WithWorkers(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Downloader) {
		d.logger = logging.NewComponentLogger(logger, "logos")
	}
}

// NewDownloader writes logos from imageBaseURL into dir.
func NewDownloader(lister Lister, imageBaseURL, dir string, opts ...Option) (*Downloader, error) {
	if lister == nil {
		return nil, errors.New("provider lister required")
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("logo directory required")
	}
	d := &Downloader{
		lister:       lister,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		dir:          dir,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		workers:      defaultWorkers,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Download lists providers and saves each logo as "<dir>/<name><ext>", the
// extension taken from the detected image type. Providers without a logo
// path are skipped. A failed image does not stop the run.
func (d *Downloader) Download(ctx context.Context) (Result, error) {
	list, err := d.lister.WatchProviderList(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create logo dir: %w", err)
	}

	var (
		mu  sync.Mutex
		res = Result{Downloaded: []string{}, Failed: []string{}}
	)
	p := pool.New().WithMaxGoroutines(d.workers)
	for _, provider := range list {
		if strings.TrimSpace(provider.LogoPath) == "" || strings.TrimSpace(provider.Name) == "" {
			res.Skipped++
			continue
		}
		p.Go(func() {
			path, err := d.fetch(ctx, provider)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed = append(res.Failed, provider.Name)
				logging.WarnWithContext(d.logger, "logo download failed", "logo_download_failed",
					logging.String("provider", provider.Name),
					logging.Error(err),
					logging.String(logging.FieldImpact, "provider shown without a logo"),
				)
				return
			}
			res.Downloaded = append(res.Downloaded, path)
			d.logger.Debug("logo downloaded", logging.String("provider", provider.Name), logging.String("path", path))
		})
	}
	p.Wait()

	sort.Strings(res.Downloaded)
	sort.Strings(res.Failed)
	d.logger.Info("logo download complete",
		logging.Int("downloaded", len(res.Downloaded)),
		logging.Int("skipped", res.Skipped),
		logging.Int("failed", len(res.Failed)))
	return res, ctx.Err()
}

func (d *Downloader) fetch(ctx context.Context, provider tmdb.WatchProvider) (string, error) {
	var data []byte
	err := httpx.Retry(ctx, 2, 250*time.Millisecond, func() error {
		var fetchErr error
		data, fetchErr = d.get(ctx, d.imageBaseURL+provider.LogoPath)
		return fetchErr
	})
	if err != nil {
		return "", err
	}
	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		ext = fallbackExt
	}
	path := filepath.Join(d.dir, FileName(provider.Name)+ext)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write logo: %w", err)
	}
	return path, nil
}

func (d *Downloader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute image request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &httpx.StatusError{Service: "tmdb images", StatusCode: resp.StatusCode, Latency: time.Since(start)}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// FileName maps a provider name to a safe file stem.
func FileName(name string) string {
	return textutil.SanitizeFileName(name)
}
