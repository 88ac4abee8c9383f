package lazyload

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/nfnt/resize"

	// Decoders for the formats the catalog serves.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// HTTP client constants
const (
	DefaultFetchTimeout      = 30 * time.Second
	TransportMaxIdleConns    = 100
	TransportMaxIdlePerHost  = 10
	TransportIdleConnTimeout = 90 * time.Second
)

// Image constraints
const (
	// DefaultMaxEdge is the longest edge kept after decode; larger images
	// are downscaled before they reach a widget. Zero disables scaling.
	DefaultMaxEdge = 1600
)

// FetchError reports a failed network retrieval of an asset
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError reports an asset that was fetched but could not be decoded
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves and decodes one asset. It is the seam between the
// loading machinery and the network, so tests can substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcher fetches assets over HTTP and decodes them in-process
type HTTPFetcher struct {
	client  *http.Client
	maxEdge uint
}

// NewHTTPFetcher creates a fetcher with a pooled transport. A timeout of
// zero falls back to DefaultFetchTimeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        TransportMaxIdleConns,
				MaxIdleConnsPerHost: TransportMaxIdlePerHost,
				IdleConnTimeout:     TransportIdleConnTimeout,
			},
		},
		maxEdge: DefaultMaxEdge,
	}
}

// SetMaxEdge sets the longest image edge kept after decode; zero disables
// downscaling
func (f *HTTPFetcher) SetMaxEdge(maxEdge uint) {
	f.maxEdge = maxEdge
}

// Fetch retrieves the asset at url and decodes it. Network and HTTP-status
// failures come back as *FetchError, undecodable payloads as *DecodeError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}

	return f.scale(img), nil
}

// scale downscales img so its longest edge is at most maxEdge, preserving
// aspect ratio. Images already small enough pass through untouched.
func (f *HTTPFetcher) scale(img image.Image) image.Image {
	if f.maxEdge == 0 {
		return img
	}

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())
	if width <= f.maxEdge && height <= f.maxEdge {
		return img
	}

	if width >= height {
		return resize.Resize(f.maxEdge, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, f.maxEdge, img, resize.Lanczos3)
}
