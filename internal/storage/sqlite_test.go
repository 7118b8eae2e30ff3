package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Player: "ann", Speed: "fast", Score: 4, Length: 7, Duration: 12 * time.Second})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id = %q, not a uuid: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Player != "ann" || got.Speed != "fast" || got.Score != 4 || got.Length != 7 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.Duration != 12*time.Second {
		t.Errorf("Duration = %v, want 12s", got.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestSaveRunKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed-id", Player: "bob", Speed: "slow"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() id = %q, want fixed-id", id)
	}

	if _, err := store.SaveRun(Run{ID: "fixed-id", Player: "bob", Speed: "slow"}); err == nil {
		t.Error("SaveRun() with a duplicate id should fail")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, want nil", got)
	}
}

func TestTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Player: "a", Speed: "medium", Score: 10, Duration: 30 * time.Second},
		{Player: "b", Speed: "medium", Score: 25, Duration: 90 * time.Second},
		{Player: "c", Speed: "medium", Score: 10, Duration: 20 * time.Second},
		{Player: "d", Speed: "fast", Score: 99, Duration: time.Minute},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("medium", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	// Ties on score go to the faster run
	want := []string{"b", "c", "a"}
	if len(top) != len(want) {
		t.Fatalf("TopRuns() returned %d runs, want %d", len(top), len(want))
	}
	for i, p := range want {
		if top[i].Player != p {
			t.Errorf("TopRuns()[%d].Player = %q, want %q", i, top[i].Player, p)
		}
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].Player != "d" || all[1].Player != "b" {
		t.Errorf("TopRuns(all, 2) = %+v", all)
	}
}

func TestPlayerRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveRun(Run{Player: "ann", Speed: "slow", Score: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{Player: "bob", Speed: "slow", Score: 50}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.PlayerRuns("ann", 0)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("PlayerRuns() returned %d runs, want 3", len(runs))
	}
	// Newest first
	if runs[0].Score != 2 || runs[2].Score != 0 {
		t.Errorf("PlayerRuns() order = %d,%d,%d", runs[0].Score, runs[1].Score, runs[2].Score)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	hs, err := store.HighScore("slow")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if hs != 0 {
		t.Errorf("HighScore() = %d, want 0 for empty", hs)
	}

	for _, s := range []int{3, 17, 8} {
		if _, err := store.SaveRun(Run{Player: "p", Speed: "slow", Score: s}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	hs, err = store.HighScore("slow")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if hs != 17 {
		t.Errorf("HighScore() = %d, want 17", hs)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "p", Speed: "slow", Score: 1})
	store.SaveRun(Run{Player: "p", Speed: "fast", Score: 2})

	if err := store.ClearRuns("slow"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	slow, _ := store.TopRuns("slow", 10)
	if len(slow) != 0 {
		t.Errorf("Expected 0 slow runs after clear, got %d", len(slow))
	}
	fast, _ := store.TopRuns("fast", 10)
	if len(fast) != 1 {
		t.Errorf("Expected fast runs to survive, got %d", len(fast))
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Player: "p", Speed: "medium", Score: 4, Duration: 10 * time.Second})
	store.SaveRun(Run{Player: "p", Speed: "medium", Score: 8, Duration: 40 * time.Second})
	store.SaveRun(Run{Player: "p", Speed: "fast", Score: 1, Duration: 5 * time.Second})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	medium := stats["medium"]
	if medium == nil {
		t.Fatal("Missing stats for medium")
	}
	if medium.Runs != 2 {
		t.Errorf("medium.Runs = %d, want 2", medium.Runs)
	}
	if medium.HighScore != 8 {
		t.Errorf("medium.HighScore = %d, want 8", medium.HighScore)
	}
	if medium.AvgScore != 6 {
		t.Errorf("medium.AvgScore = %v, want 6", medium.AvgScore)
	}
	if medium.LongestRun != 40*time.Second {
		t.Errorf("medium.LongestRun = %v, want 40s", medium.LongestRun)
	}

	if stats["fast"] == nil || stats["fast"].Runs != 1 {
		t.Errorf("fast stats = %+v", stats["fast"])
	}
	if _, ok := stats["slow"]; ok {
		t.Error("Unexpected stats for a speed with no runs")
	}
}
