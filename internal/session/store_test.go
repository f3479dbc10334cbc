package session

import (
	"testing"
	"time"

	"github.com/hanseo-dev/jasoseo-ai/internal/coverletter"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	store := NewStore(ttl)
	current := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	return store, &current
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(time.Minute)

	sess := store.New()
	if sess.ID == "" {
		t.Fatalf("expected a session id")
	}

	sess.Request = coverletter.Request{Company: "Acme", Position: "Engineer"}
	sess.Result = &coverletter.Result{Motivation: "A", Growth: "B", Vision: "C"}
	store.Put(sess)

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatalf("expected session to be found")
	}
	if got.Request.Company != "Acme" || got.Result.Growth != "B" {
		t.Fatalf("unexpected session contents: %+v", got)
	}
	if got.Paid {
		t.Fatalf("fresh session must not be paid")
	}
}

func TestStoreExpiry(t *testing.T) {
	store, current := newTestStore(time.Minute)

	sess := store.New()

	*current = current.Add(61 * time.Second)

	if _, ok := store.Get(sess.ID); ok {
		t.Fatalf("expected expired session to be gone")
	}
}

func TestStorePutSlidesExpiry(t *testing.T) {
	store, current := newTestStore(time.Minute)

	sess := store.New()

	*current = current.Add(50 * time.Second)
	store.Put(sess)

	*current = current.Add(50 * time.Second)
	if _, ok := store.Get(sess.ID); !ok {
		t.Fatalf("expected refreshed session to survive")
	}
}

func TestStoreMarkPaid(t *testing.T) {
	store, current := newTestStore(time.Minute)

	sess := store.New()

	if !store.MarkPaid(sess.ID) {
		t.Fatalf("expected MarkPaid to succeed for a live session")
	}

	got, ok := store.Get(sess.ID)
	if !ok || !got.Paid {
		t.Fatalf("expected paid session, got %+v ok=%v", got, ok)
	}

	if store.MarkPaid("missing") {
		t.Fatalf("expected MarkPaid to fail for an unknown session")
	}

	*current = current.Add(2 * time.Minute)
	if store.MarkPaid(sess.ID) {
		t.Fatalf("expected MarkPaid to fail for an expired session")
	}
}

func TestStorePurge(t *testing.T) {
	store, current := newTestStore(time.Minute)

	stale := store.New()
	*current = current.Add(2 * time.Minute)
	fresh := store.New()

	if removed := store.Purge(); removed != 1 {
		t.Fatalf("expected one purged session, got %d", removed)
	}

	if _, ok := store.Get(fresh.ID); !ok {
		t.Fatalf("expected the fresh session to survive purge")
	}
	if _, ok := store.Get(stale.ID); ok {
		t.Fatalf("expected the stale session to be purged")
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	store, _ := newTestStore(time.Minute)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		sess := store.New()
		if _, dup := seen[sess.ID]; dup {
			t.Fatalf("duplicate session id: %s", sess.ID)
		}
		seen[sess.ID] = struct{}{}
	}
}
