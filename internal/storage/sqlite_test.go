package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-hamster/internal/save"
	"github.com/vovakirdan/tui-hamster/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun("alice")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best run of 0 with no history, got %d", best)
	}

	for _, loops := range []int{4, 12, 7} {
		if _, err := store.RecordRun("alice", loops); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	store.RecordRun("bob", 99) //nolint:errcheck

	runs, err := store.RecentRuns("alice", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Loops != 7 || runs[1].Loops != 12 {
		t.Errorf("RecentRuns() = %+v, expected newest first", runs)
	}

	best, _ = store.BestRun("alice")
	if best != 12 {
		t.Errorf("Expected best run of 12, got %d", best)
	}
}

func TestStoreStatsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	snap, err := store.LoadStats("alice")
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if snap.GamesPlayed != 0 || len(snap.Achievements) != 0 {
		t.Errorf("new user snapshot = %+v", snap)
	}

	values := map[string]int{
		stats.StatGamesPlayed: 3,
		stats.StatTotalRuns:   5,
		stats.StatTotalLoops:  120,
	}
	if err := store.SaveStats("alice", values, []string{"ACH_FIRST_RUN", "ACH_FIRST_GAME"}); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	// Saving again with fewer achievements never removes one
	values[stats.StatTotalRuns] = 6
	if err := store.SaveStats("alice", values, []string{"ACH_FIRST_GAME"}); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}

	snap, err = store.LoadStats("alice")
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if snap.GamesPlayed != 3 || snap.TotalRuns != 6 || snap.TotalLoops != 120 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.Achievements) != 2 || snap.Achievements[0] != "ACH_FIRST_GAME" {
		t.Errorf("achievements = %v", snap.Achievements)
	}

	if err := store.ResetStats("alice"); err != nil {
		t.Fatalf("ResetStats() failed: %v", err)
	}
	snap, _ = store.LoadStats("alice")
	if snap.TotalRuns != 0 || len(snap.Achievements) != 0 {
		t.Errorf("snapshot after reset = %+v", snap)
	}
}

func TestStoreLeaderboards(t *testing.T) {
	store := openTestStore(t)

	h1, err := store.FindLeaderboard(stats.BoardFastestRun)
	if err != nil {
		t.Fatalf("FindLeaderboard() failed: %v", err)
	}
	h2, _ := store.FindLeaderboard(stats.BoardFastestRun)
	if h1 == 0 || h1 != h2 {
		t.Fatalf("FindLeaderboard() handles %d, %d; expected stable non-zero", h1, h2)
	}

	users := []string{"ann", "ben", "cat", "dan", "eve"}
	for i, u := range users {
		if _, _, err := store.UploadLeaderboardScore(h1, u, (i+1)*10, true); err != nil {
			t.Fatalf("UploadLeaderboardScore() failed: %v", err)
		}
	}

	// Keep best: a lower score is ignored, a higher one replaces
	changed, rank, err := store.UploadLeaderboardScore(h1, "ann", 5, true)
	if err != nil || changed || rank != 5 {
		t.Errorf("lower upload: changed=%v rank=%d err=%v", changed, rank, err)
	}
	changed, rank, _ = store.UploadLeaderboardScore(h1, "ann", 100, true)
	if !changed || rank != 1 {
		t.Errorf("higher upload: changed=%v rank=%d", changed, rank)
	}

	top, err := store.LeaderboardEntries(h1, "ann", stats.ScopeGlobal, 1, 3)
	if err != nil {
		t.Fatalf("LeaderboardEntries() failed: %v", err)
	}
	if len(top) != 3 || top[0].User != "ann" || top[1].User != "eve" || top[2].Rank != 3 {
		t.Errorf("global top = %+v", top)
	}

	around, _ := store.LeaderboardEntries(h1, "cat", stats.ScopeAroundUser, -1, 1)
	if len(around) != 3 || around[1].User != "cat" {
		t.Errorf("around cat = %+v", around)
	}

	none, _ := store.LeaderboardEntries(h1, "zed", stats.ScopeAroundUser, -5, 5)
	if len(none) != 0 {
		t.Errorf("user without entry got %+v", none)
	}

	if _, _, err := store.UploadLeaderboardScore(999, "ann", 1, true); err == nil {
		t.Error("upload to unknown board should fail")
	}

	names, _ := store.LeaderboardNames()
	if len(names) != 1 || names[0] != stats.BoardFastestRun {
		t.Errorf("LeaderboardNames() = %v", names)
	}
}

func TestStoreSaveBlobs(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadBlob("local"); !errors.Is(err, save.ErrNotFound) {
		t.Fatalf("LoadBlob() on empty store = %v, expected ErrNotFound", err)
	}

	rec, err := save.Load(store, "local")
	if err != nil || rec != save.Default() {
		t.Fatalf("save.Load() = %+v, %v", rec, err)
	}

	rec.HighScore = 9
	rec.SetName("joe")
	rec.SFXMuted = true
	if err := save.Store(store, "local", rec); err != nil {
		t.Fatalf("save.Store() failed: %v", err)
	}
	got, err := save.Load(store, "local")
	if err != nil || got != rec {
		t.Errorf("save.Load() = %+v, %v; expected %+v", got, err, rec)
	}
}

func TestClientOverStore(t *testing.T) {
	store := openTestStore(t)
	c := stats.NewClient(store, stats.ClientConfig{AppID: 1, User: "alice"}, nil)
	defer c.Close()

	c.SetStat(stats.StatTotalRuns, 1)
	c.StoreStats()
	c.RequestStats()

	var got []stats.Result
	for i := 0; i < 2000 && len(got) < 2; i++ {
		got = append(got, c.Poll()...)
		time.Sleep(time.Millisecond)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results", len(got))
	}
	recv, ok := got[1].(stats.StatsReceived)
	if !ok || recv.Err != nil || recv.Snapshot.TotalRuns != 1 {
		t.Errorf("StatsReceived = %+v", got[1])
	}
}
