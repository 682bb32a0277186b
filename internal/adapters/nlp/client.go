// Package nlp is the HTTP client for the external text-understanding
// service: date extraction and search-intent classification. All failures
// come back as *domain.UpstreamError so the orchestrator can apply its
// fallbacks without inspecting transport details.
package nlp

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stay_booking/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

type datesRequest struct {
	Query string `json:"query"`
	Today string `json:"today"`
}

type datesResponse struct {
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Confidence string `json:"confidence"`
	Method     string `json:"method"`
	Details    string `json:"details"`
}

func (c *Client) ExtractDates(ctx context.Context, query string, today time.Time) (domain.DateExtraction, error) {
	var resp datesResponse
	err := c.post(ctx, c.base+"/v1/dates", datesRequest{
		Query: query,
		Today: today.UTC().Format(domain.DateLayout),
	}, &resp)
	if err != nil {
		return domain.DateExtraction{}, &domain.UpstreamError{Op: "extract dates", Err: err}
	}
	stay, err := domain.ParseStay(resp.CheckIn, resp.CheckOut)
	if err != nil {
		return domain.DateExtraction{}, &domain.UpstreamError{Op: "extract dates", Err: err}
	}
	return domain.DateExtraction{
		Stay:       stay,
		Confidence: domain.Confidence(resp.Confidence),
		Method:     resp.Method,
		Details:    resp.Details,
	}, nil
}

type intentRequest struct {
	Query string `json:"query"`
}

type intentResponse struct {
	HasHotelIntent bool `json:"has_hotel_intent"`
	Filters        struct {
		Location  string   `json:"location"`
		MinRating float64  `json:"min_rating"`
		MaxPrice  float64  `json:"max_price"`
		Amenities []string `json:"amenities"`
	} `json:"filters"`
	Response string `json:"response"`
}

func (c *Client) Classify(ctx context.Context, query string) (domain.Intent, error) {
	var resp intentResponse
	if err := c.post(ctx, c.base+"/v1/intent", intentRequest{Query: query}, &resp); err != nil {
		return domain.Intent{}, &domain.UpstreamError{Op: "classify intent", Err: err}
	}
	return domain.Intent{
		HasHotelIntent: resp.HasHotelIntent,
		Filters: domain.SearchFilters{
			Location:  resp.Filters.Location,
			MinRating: resp.Filters.MinRating,
			MaxPrice:  resp.Filters.MaxPrice,
			Amenities: resp.Filters.Amenities,
		},
		Response: resp.Response,
	}, nil
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("nlp: unauthorized")
	ErrForbidden    = errors.New("nlp: forbidden")
)

// post performs a POST with client-side rate limiting, retries, and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided.
func (c *Client) post(ctx context.Context, url string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "stay-booking/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// Base doubles each attempt (200ms, 400ms, 800ms...), with up to +50% random
// jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
