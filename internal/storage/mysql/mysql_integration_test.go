//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"stay_booking/internal/domain"
	mysqlrepo "stay_booking/internal/storage/mysql"
)

// ---------- small helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=staybook",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/staybook?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func seedInventory(t *testing.T, repo *mysqlrepo.Repo) {
	t.Helper()
	ctx := context.Background()

	h := domain.Hotel{
		ID: "hotel_t1", Name: "Test Plaza", Location: "Testville, TS",
		Rating: 4.2, Amenities: []string{"WiFi", "Pool"}, PricePerNight: 100, RoomCount: 2,
		Description: "integration fixture",
	}
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}
	r := domain.Room{
		ID: "room_t1", HotelID: "hotel_t1", Type: "Standard",
		Capacity: 2, PricePerNight: 100, Amenities: []string{"WiFi"}, Available: true,
	}
	if err := repo.UpsertRoom(ctx, r); err != nil {
		t.Fatalf("UpsertRoom: %v", err)
	}
}

func stay(t *testing.T, in, out string) domain.Stay {
	t.Helper()
	s, err := domain.ParseStay(in, out)
	if err != nil {
		t.Fatalf("parse stay: %v", err)
	}
	return s
}

// ---------- the tests ----------

func TestRepo_MySQL_CommitConflictAndCancel(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	seedInventory(t, repo)
	ctx := context.Background()

	first := domain.Booking{
		ID: "bk-1", HotelID: "hotel_t1", RoomID: "room_t1",
		GuestName: "Ana", GuestEmail: "ana@example.com",
		Stay: stay(t, "2025-07-25", "2025-07-27"), TotalPrice: 200, Status: domain.StatusConfirmed,
	}
	if err := repo.Commit(ctx, first); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	// overlapping range must be rejected with the conflicting stay attached
	overlapping := first
	overlapping.ID = "bk-2"
	overlapping.Stay = stay(t, "2025-07-26", "2025-07-28")
	err := repo.Commit(ctx, overlapping)
	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(ce.Ranges) != 1 || !ce.Ranges[0].Overlaps(first.Stay) {
		t.Fatalf("unexpected conflict ranges: %+v", ce.Ranges)
	}

	// back-to-back stay shares the boundary day and must succeed
	adjacent := first
	adjacent.ID = "bk-3"
	adjacent.Stay = stay(t, "2025-07-27", "2025-07-29")
	if err := repo.Commit(ctx, adjacent); err != nil {
		t.Fatalf("adjacent commit: %v", err)
	}

	// cancel frees the range, second cancel is flagged
	if _, prev, err := repo.Cancel(ctx, "bk-1"); err != nil || prev != domain.StatusConfirmed {
		t.Fatalf("cancel: prev=%s err=%v", prev, err)
	}
	if _, _, err := repo.Cancel(ctx, "bk-1"); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}

	retry := overlapping
	retry.ID = "bk-4"
	if err := repo.Commit(ctx, retry); err != nil {
		t.Fatalf("commit after cancel: %v", err)
	}

	bookings, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("expected 3 bookings (cancelled rows are retained), got %d", len(bookings))
	}
}

func TestRepo_MySQL_InventoryLookups(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	seedInventory(t, repo)
	ctx := context.Background()

	h, err := repo.FindHotel(ctx, "hotel_t1")
	if err != nil || h.Name != "Test Plaza" || len(h.Amenities) != 2 {
		t.Fatalf("FindHotel: %+v err=%v", h, err)
	}
	if _, err := repo.FindHotel(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindRoom(ctx, "hotel_t1", "room_t1"); err != nil {
		t.Fatalf("FindRoom: %v", err)
	}
	// room id valid but wrong hotel
	if _, err := repo.FindRoom(ctx, "nope", "room_t1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong hotel, got %v", err)
	}

	if err := repo.SetRoomAvailable(ctx, "room_t1", false); err != nil {
		t.Fatalf("SetRoomAvailable: %v", err)
	}
	r, err := repo.FindRoom(ctx, "hotel_t1", "room_t1")
	if err != nil || r.Available {
		t.Fatalf("expected unavailable room, got %+v err=%v", r, err)
	}
	if err := repo.SetRoomAvailable(ctx, "ghost", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}
}
