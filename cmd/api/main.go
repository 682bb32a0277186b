package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "stay_booking/internal/adapters/http_server"
	"stay_booking/internal/adapters/nlp"
	"stay_booking/internal/adapters/observability"
	redisad "stay_booking/internal/adapters/redis"
	"stay_booking/internal/app"
	"stay_booking/internal/domain"
	"stay_booking/internal/shared"
	"stay_booking/internal/storage/memory"
	mysqlrepo "stay_booking/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	inv, ledger := openStore(cfg)

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	search := app.NewSearchService(inv, cache, cfg.CacheTTL)
	avail := app.NewAvailabilityService(inv, ledger)
	booking := app.NewBookingService(inv, ledger, cache, cfg.CacheTTL)
	tools := app.NewToolbox(search, avail, booking)

	nlpClient, err := nlp.New(cfg.NLPBase, cfg.NLPKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize NLP client")
	}
	flow := app.NewOrchestrator(nlpClient, nlpClient, tools, cfg.NLPTimeout)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Search: search, Avail: avail, Booking: booking, Flow: flow})

	log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// openStore wires the configured backend behind the inventory and ledger
// ports. The in-memory store ships with demo data so the API is usable
// without any infrastructure.
func openStore(cfg shared.Config) (domain.Inventory, domain.Ledger) {
	switch cfg.StoreBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo := mysqlrepo.New(db)
		if cfg.SeedDemoData {
			seedMySQL(repo)
		}
		return repo, repo
	case "memory":
		store := memory.New()
		if cfg.SeedDemoData {
			memory.SeedDemo(store)
		}
		return store, store
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
		return nil, nil
	}
}

func seedMySQL(repo *mysqlrepo.Repo) {
	ctx := context.Background()
	hotels, rooms := memory.DemoInventory()
	for _, h := range hotels {
		if err := repo.UpsertHotel(ctx, h); err != nil {
			log.Fatal().Str("hotel", h.ID).Err(err).Msg("seed hotel failed")
		}
	}
	for _, r := range rooms {
		if err := repo.UpsertRoom(ctx, r); err != nil {
			log.Fatal().Str("room", r.ID).Err(err).Msg("seed room failed")
		}
	}
	log.Info().Int("hotels", len(hotels)).Int("rooms", len(rooms)).Msg("demo inventory seeded")
}
