package sentiment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

type Config struct {
	BatchSize       int           // terms classified concurrently per batch
	BatchDelay      time.Duration // pause between successive batches
	MaxTerms        int           // hard cap on terms per batch request
	MaxCacheEntries int           // cache stops growing at this size
}

// Analyzer classifies terms with a process-lifetime cache in front of the
// external classifier. Batches run their terms concurrently and pause between
// batches, which caps in-flight external calls and gives the upstream service
// coarse backpressure.
type Analyzer struct {
	classifier Classifier
	config     Config

	mu    sync.RWMutex
	cache map[string]Result
}

func NewAnalyzer(classifier Classifier, config *Config) *Analyzer {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 10
	}
	if cfg.BatchDelay == 0 {
		cfg.BatchDelay = 100 * time.Millisecond
	}
	if cfg.MaxTerms == 0 {
		cfg.MaxTerms = 150
	}
	if cfg.MaxCacheEntries == 0 {
		cfg.MaxCacheEntries = 4096
	}

	return &Analyzer{
		classifier: classifier,
		config:     cfg,
		cache:      make(map[string]Result),
	}
}

// Analyze returns the sentiment for one term. Cached results are returned
// without an external call; classifier failures of any kind collapse to the
// neutral fallback, which is deliberately not cached so a transient outage
// stays retryable on later requests.
func (a *Analyzer) Analyze(ctx context.Context, term string) Result {
	key := strings.ToLower(term)

	if cached, ok := a.lookup(key); ok {
		return cached
	}

	prompt := fmt.Sprintf("The market outlook for %s is", term)
	classification, err := a.classifier.Classify(ctx, prompt)
	if err != nil {
		log.Printf("Sentiment classification failed for %q: %v", term, err)
		return Neutral()
	}

	result, ok := normalize(classification)
	if !ok {
		log.Printf("Sentiment classifier returned unknown label %q for %q", classification.Label, term)
		return Neutral()
	}

	a.store(key, result)
	return result
}

// BatchAnalyze classifies a list of terms, at most MaxTerms of them, and maps
// every analyzed term to its result exactly once. Terms within one batch run
// concurrently; the next batch starts only after the previous one finished
// and the inter-batch delay elapsed.
func (a *Analyzer) BatchAnalyze(ctx context.Context, terms []string) map[string]Result {
	if len(terms) > a.config.MaxTerms {
		terms = terms[:a.config.MaxTerms]
	}

	results := make(map[string]Result, len(terms))
	var resultsMu sync.Mutex

	for start := 0; start < len(terms); start += a.config.BatchSize {
		end := start + a.config.BatchSize
		if end > len(terms) {
			end = len(terms)
		}
		batch := terms[start:end]

		var wg sync.WaitGroup
		for _, term := range batch {
			wg.Add(1)
			go func(term string) {
				defer wg.Done()
				result := a.Analyze(ctx, term)
				resultsMu.Lock()
				results[term] = result
				resultsMu.Unlock()
			}(term)
		}
		wg.Wait()

		if end < len(terms) {
			select {
			case <-ctx.Done():
				// fill the remainder with neutral so the contract of one
				// entry per requested term still holds
				for _, term := range terms[end:] {
					results[term] = Neutral()
				}
				return results
			case <-time.After(a.config.BatchDelay):
			}
		}
	}

	return results
}

// MaxTerms reports the per-request term cap.
func (a *Analyzer) MaxTerms() int {
	return a.config.MaxTerms
}

// CacheSize reports how many distinct terms have been classified and cached.
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}

func (a *Analyzer) lookup(key string) (Result, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result, ok := a.cache[key]
	return result, ok
}

// store inserts a successful classification. The cache is append-only and
// stops growing at MaxCacheEntries; overflow results are served uncached
// rather than evicting, which keeps the bound simple for a vocabulary that is
// a few hundred terms in practice.
func (a *Analyzer) store(key string, result Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.cache) >= a.config.MaxCacheEntries {
		if _, ok := a.cache[key]; !ok {
			return
		}
	}
	a.cache[key] = result
}
