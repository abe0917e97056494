package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/adofai-tools/tilebeat/pkg/cache"
	"github.com/adofai-tools/tilebeat/pkg/errors"
	"github.com/adofai-tools/tilebeat/pkg/observability"
)

// maxFetchBytes caps remote level size. Heavily decorated levels reach tens
// of megabytes of JSON, so the limit is generous.
const maxFetchBytes = 64 << 20

// defaultHTTPClient is used for URL sources when Options.HTTPClient is nil.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// LoadWithCacheInfo loads level text from the configured source and returns
// cache hit info. Only URL sources are cached; local files and inline content
// are returned as-is.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (string, bool, error) {
	if err := opts.ValidateSource(); err != nil {
		return "", false, err
	}
	r.applyLogger(&opts)

	switch {
	case opts.Content != "":
		return opts.Content, false, nil

	case opts.Path != "":
		raw, err := os.ReadFile(opts.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, errors.Wrap(errors.ErrCodeFileNotFound, err, "level file %s does not exist", opts.Path)
			}
			return "", false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read level file %s", opts.Path)
		}
		return decodeLevelText(raw), false, nil

	default:
		return r.loadURL(ctx, opts)
	}
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (string, error) {
	text, _, err := r.LoadWithCacheInfo(ctx, opts)
	return text, err
}

// loadURL fetches level text over HTTP with caching. The cache stores the
// decoded UTF-8 text, so hits skip both the network and the decode.
func (r *Runner) loadURL(ctx context.Context, opts Options) (string, bool, error) {
	cacheKey := r.Keyer.FetchKey(opts.URL)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "fetch")
			return string(data), true, nil // Cache hit
		}
		observability.Cache().OnCacheMiss(ctx, "fetch")
	}

	raw, err := r.fetch(ctx, opts)
	if err != nil {
		return "", false, err
	}
	text := decodeLevelText(raw)

	// Cache the result
	_ = r.Cache.Set(ctx, cacheKey, []byte(text), cache.TTLFetch)
	observability.Cache().OnCacheSet(ctx, "fetch", len(text))

	return text, false, nil // Cache miss
}

// fetch retrieves the raw level bytes from opts.URL. Transport failures and
// 5xx responses are retried with backoff; client errors are returned
// immediately with a structured code.
func (r *Runner) fetch(ctx context.Context, opts Options) ([]byte, error) {
	client := opts.HTTPClient
	if client == nil {
		client = defaultHTTPClient
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", opts.URL)
		}
		req.Header.Set("Accept", "application/json, text/plain")

		observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
		reqStart := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
			return cache.Retryable(err)
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(reqStart))

		switch {
		case resp.StatusCode == http.StatusOK:
			// Read below
		case resp.StatusCode == http.StatusNotFound:
			return errors.New(errors.ErrCodeNotFound, "level not found at %s", opts.URL)
		case resp.StatusCode == http.StatusTooManyRequests:
			retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
			return errors.Wrap(errors.ErrCodeRateLimited,
				&errors.RateLimitedError{RetryAfter: retryAfter, Message: "level host rate limited"},
				"rate limited fetching %s", opts.URL)
		case resp.StatusCode >= 500:
			return cache.Retryable(fmt.Errorf("server error: %s", resp.Status))
		default:
			return errors.New(errors.ErrCodeNetwork, "unexpected status %s fetching %s", resp.Status, opts.URL)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
		if err != nil {
			return cache.Retryable(err)
		}
		if len(data) > maxFetchBytes {
			return errors.New(errors.ErrCodeInvalidLevel, "level at %s exceeds %d MiB", opts.URL, maxFetchBytes>>20)
		}
		body = data
		return nil
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", opts.URL)
	}
	return body, nil
}

// decodeLevelText converts raw level bytes to a UTF-8 string. Levels saved by
// the game's Windows editor carry a UTF-8 or UTF-16 byte order mark;
// BOMOverride sniffs it, picks the matching decoder, and strips it. Bytes
// without a BOM are treated as UTF-8.
func decodeLevelText(raw []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
