package testsupport

import (
	"context"
	"sync"

	"streamgap/internal/requests"
)

// FakeRequestSource serves fixed pending requests per kind.
type FakeRequestSource struct {
	Data map[requests.Kind][]requests.Request

	mu    sync.Mutex
	calls map[requests.Kind]int
}

// NewFakeRequestSource returns a source serving movies and shows.
func NewFakeRequestSource(movies, shows []requests.Request) *FakeRequestSource {
	return &FakeRequestSource{
		Data: map[requests.Kind][]requests.Request{
			requests.KindMovie: movies,
			requests.KindTV:    shows,
		},
		calls: map[requests.Kind]int{},
	}
}

// Pending returns a fresh copy of the configured requests.
func (f *FakeRequestSource) Pending(_ context.Context, kind requests.Kind) []requests.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	out := make([]requests.Request, len(f.Data[kind]))
	copy(out, f.Data[kind])
	for i := range out {
		out[i].ResolvedProviders = []string{}
	}
	return out
}

// Calls reports how many times kind was fetched.
func (f *FakeRequestSource) Calls(kind requests.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}
