package lazyload

import (
	"context"
	"sync"
)

// Outcome is the settle result for one preloaded URL
type Outcome struct {
	URL string
	Err error // nil when the preload fulfilled
}

// Fulfilled returns true if the preload succeeded
func (o Outcome) Fulfilled() bool {
	return o.Err == nil
}

// Preloader warms assets ahead of navigation. It fetches and decodes with
// the same primitive the widgets use but renders nothing, so a later mount
// of the same URL hits whatever cache the platform transport keeps.
type Preloader struct {
	fetcher Fetcher
}

// NewPreloader creates a preloader over the given fetcher
func NewPreloader(fetcher Fetcher) *Preloader {
	return &Preloader{fetcher: fetcher}
}

// PreloadOne fetches and decodes a single asset, discarding the pixels.
// The underlying fetch or decode error is returned unmodified.
func (p *Preloader) PreloadOne(ctx context.Context, url string) error {
	_, err := p.fetcher.Fetch(ctx, url)
	return err
}

// PreloadMany issues every preload concurrently and waits for all of them
// to settle. The result has exactly one entry per input URL, in input
// order; individual failures never abort the batch or shorten the result.
// There is no timeout and no concurrency cap here: each fetch is
// independent and bounded only by the fetcher's own limits.
func (p *Preloader) PreloadMany(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			outcomes[i] = Outcome{URL: url, Err: p.PreloadOne(ctx, url)}
		}(i, url)
	}
	wg.Wait()

	return outcomes
}
