package nlp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"stay_booking/internal/adapters/nlp"
	"stay_booking/internal/domain"
)

func TestClient_ExtractDates_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"check_in":   "2025-07-25",
				"check_out":  "2025-07-27",
				"confidence": "high",
				"method":     "explicit_start_plus_duration",
			})
		}
	}))
	defer ts.Close()

	cl, err := nlp.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.ExtractDates(ctx, "hotel for 2 days from july 25 2025", time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Stay.Nights() != 2 || got.Confidence != domain.ConfidenceHigh {
		t.Fatalf("unexpected extraction: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Classify_FailureIsUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := nlp.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.Classify(ctx, "hotel in sf")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestClient_Classify_MapsFilters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"has_hotel_intent": true,
			"filters": map[string]any{
				"location":  "San Francisco, CA",
				"max_price": 200.0,
				"amenities": []string{"Beach Access"},
			},
		})
	}))
	defer ts.Close()

	cl, _ := nlp.New(ts.URL, "", 100)
	got, err := cl.Classify(context.Background(), "beach hotel in sf under $200")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !got.HasHotelIntent || got.Filters.Location != "San Francisco, CA" || got.Filters.MaxPrice != 200 {
		t.Fatalf("unexpected intent: %+v", got)
	}
}
