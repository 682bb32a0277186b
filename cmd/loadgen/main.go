package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stay_booking/internal/adapters/nlp"
	"stay_booking/internal/adapters/observability"
	redisad "stay_booking/internal/adapters/redis"
	"stay_booking/internal/app"
	"stay_booking/internal/shared"
	"stay_booking/internal/storage/memory"
)

// Demo queries covering search-only runs, booking-ready runs, and queries
// that land in the fallback date path.
var queries = []struct {
	text  string
	guest app.GuestInfo
}{
	{text: "Find me a beach hotel in San Francisco for March 15 to March 18"},
	{text: "I need a hotel in New York with a gym"},
	{text: "Book a spa hotel in Miami under $200", guest: app.GuestInfo{Name: "Dana Field", Email: "dana@example.com"}},
	{text: "Somewhere nice to stay next week"},
	{text: "Hotel in Chicago for a business trip, April 2 to April 5", guest: app.GuestInfo{Name: "Sam Ortiz", Email: "sam@example.com"}},
	{text: "Cheap room in Denver with hiking nearby"},
	{text: "Luxury hotel in Boston for June 10 to June 12"},
	{text: "Anything with beach access and a pool"},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.LoadgenWorkers).
		Int("queries", len(queries)).
		Msg("loadgen starting")

	store := memory.New()
	memory.SeedDemo(store)

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	search := app.NewSearchService(store, cache, cfg.CacheTTL)
	avail := app.NewAvailabilityService(store, store)
	booking := app.NewBookingService(store, store, cache, cfg.CacheTTL)
	tools := app.NewToolbox(search, avail, booking)

	nlpClient, err := nlp.New(cfg.NLPBase, cfg.NLPKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize NLP client")
	}
	flow := app.NewOrchestrator(nlpClient, nlpClient, tools, cfg.NLPTimeout)

	sem := semaphore.NewWeighted(int64(cfg.LoadgenWorkers))
	var wg sync.WaitGroup

	for i, q := range queries {
		i, q := i, q

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			res := flow.Run(ctx, app.Request{Query: q.text, Guest: q.guest})
			ev := log.Info()
			if res.State == app.StateError {
				ev = log.Warn()
			}
			ev.Int("query", i).
				Str("state", string(res.State)).
				Int("hotels", len(res.Hotels)).
				Str("message", res.Message).
				Msg("workflow finished")
		}()
	}

	wg.Wait()
	log.Info().Msg("loadgen completed")
}
