package history

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"
)

// testDSN returns a unique shared-memory DSN for test isolation.
func testDSN(t *testing.T) string {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

func newTestSQLiteStore(t *testing.T, max int) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteStoreConfig{DSN: testDSN(t), MaxEntries: max})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// stores runs a test against every Store implementation.
func stores(t *testing.T, f func(t *testing.T, s Store)) {
	t.Run("mem", func(t *testing.T) {
		s := NewMemStore()
		t.Cleanup(func() { s.Close() })
		f(t, s)
	})
	t.Run("sqlite", func(t *testing.T) {
		f(t, newTestSQLiteStore(t, 0))
	})
}

func entry(id, expr string, r float64) Entry {
	return Entry{ID: id, Expr: expr, Result: r, Time: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)}
}

func TestStoreRecent(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := 1; i <= 5; i++ {
			if err := s.Append(ctx, entry(fmt.Sprint(i), fmt.Sprintf("%d + 0", i), float64(i))); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}

		got, err := s.Recent(ctx, 3)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(got))
		}
		for i, want := range []string{"5", "4", "3"} {
			if got[i].ID != want {
				t.Errorf("entry %d: expected ID %s, got %s", i, want, got[i].ID)
			}
		}
		if got[0].Expr != "5 + 0" || got[0].Result != 5 {
			t.Errorf("wrong newest entry %+v", got[0])
		}
		if !got[0].Time.Equal(entry("", "", 0).Time) {
			t.Errorf("time not preserved: %v", got[0].Time)
		}

		all, err := s.Recent(ctx, 0)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(all) != 5 {
			t.Errorf("expected 5 entries, got %d", len(all))
		}
	})
}

func TestStoreEmpty(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		got, err := s.Recent(context.Background(), 10)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no entries, got %v", got)
		}
	})
}

func TestStoreFailures(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		e := entry("x", "1 / 0", 0)
		e.Stage = "evaluation"
		e.Error = "evaluation failed: offset 2: division by zero"
		if err := s.Append(ctx, e); err != nil {
			t.Fatal(err)
		}
		got, err := s.Recent(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || !got[0].Failed() || got[0].Stage != "evaluation" || got[0].Error != e.Error {
			t.Errorf("wrong entry %+v", got)
		}
	})
}

func TestSQLiteStoreSpecialValues(t *testing.T) {
	s := newTestSQLiteStore(t, 0)
	ctx := context.Background()
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), -0.5} {
		if err := s.Append(ctx, entry("v", "v", v)); err != nil {
			t.Fatalf("Append(%g): %v", v, err)
		}
	}
	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}
	if got[0].Result != -0.5 || !math.IsNaN(got[1].Result) || !math.IsInf(got[2].Result, -1) || !math.IsInf(got[3].Result, 1) {
		t.Errorf("values not preserved: %+v", got)
	}
}

func TestSQLiteStorePrunes(t *testing.T) {
	s := newTestSQLiteStore(t, 2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, entry(fmt.Sprint(i), "1", 1)); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "4" || got[1].ID != "3" {
		t.Errorf("expected entries 4 and 3, got %+v", got)
	}
}
