package chat_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/symptexlab/symptex-api/internal/model/chat"
	chatservice "github.com/symptexlab/symptex-api/internal/service/chat"
)

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	first, err := store.ResolveOrCreate(ctx, "s1", "anna-zank")
	if err != nil {
		t.Fatalf("ResolveOrCreate err: %v", err)
	}

	second, err := store.ResolveOrCreate(ctx, "s1", "maria-meier")
	if err != nil {
		t.Fatalf("ResolveOrCreate err: %v", err)
	}

	if second.PatientID != first.PatientID {
		t.Fatalf("second call must observe the first session, got patient %s", second.PatientID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("session must be created at most once per id")
	}
}

func TestResolveOrCreateConcurrentFirstUse(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	const callers = 32
	sessions := make([]chat.Session, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			session, err := store.ResolveOrCreate(ctx, "s2", "anna-zank")
			if err != nil {
				t.Errorf("ResolveOrCreate err: %v", err)
				return
			}
			sessions[idx] = session
		}(i)
	}
	wg.Wait()

	for _, session := range sessions {
		if !session.CreatedAt.Equal(sessions[0].CreatedAt) || session.ID != "s2" {
			t.Fatal("all concurrent callers must observe the same session row")
		}
	}
}

func TestAppendHistoryRoundTrip(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.ResolveOrCreate(ctx, "s1", "anna-zank"); err != nil {
		t.Fatalf("ResolveOrCreate err: %v", err)
	}

	contents := []string{"Guten Tag", "Wie geht es Ihnen?", "Wo haben Sie Schmerzen?"}
	for _, content := range contents {
		if _, err := store.Append(ctx, "s1", chat.RoleUser, content); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(history) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(history))
	}
	for i, message := range history {
		if message.Content != contents[i] {
			t.Fatalf("message %d out of order: got %q want %q", i, message.Content, contents[i])
		}
	}
}

func TestAppendTimestampsAreStrictlyMonotonic(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.ResolveOrCreate(ctx, "s1", "anna-zank"); err != nil {
		t.Fatalf("ResolveOrCreate err: %v", err)
	}

	for i := 0; i < 100; i++ {
		if _, err := store.Append(ctx, "s1", chat.RoleUser, fmt.Sprintf("turn %d", i)); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	for i := 1; i < len(history); i++ {
		if !history[i].CreatedAt.After(history[i-1].CreatedAt) {
			t.Fatalf("timestamp of message %d is not strictly later than its predecessor", i)
		}
	}
}

func TestConcurrentAppendsToDistinctSessions(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	const sessions = 8
	const perSession = 20

	for i := 0; i < sessions; i++ {
		if _, err := store.ResolveOrCreate(ctx, fmt.Sprintf("s%d", i), "anna-zank"); err != nil {
			t.Fatalf("ResolveOrCreate err: %v", err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("s%d", idx)
			for j := 0; j < perSession; j++ {
				if _, err := store.Append(ctx, sessionID, chat.RoleUser, fmt.Sprintf("turn %d", j)); err != nil {
					t.Errorf("Append err: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < sessions; i++ {
		history, err := store.History(ctx, fmt.Sprintf("s%d", i))
		if err != nil {
			t.Fatalf("History err: %v", err)
		}
		if len(history) != perSession {
			t.Fatalf("session s%d lost writes: got %d messages", i, len(history))
		}
		for j, message := range history {
			if message.Content != fmt.Sprintf("turn %d", j) {
				t.Fatalf("session s%d message %d out of order: %q", i, j, message.Content)
			}
		}
	}
}

func TestAppendUnknownSession(t *testing.T) {
	store := chatservice.NewMemoryStore()

	_, err := store.Append(context.Background(), "missing", chat.RoleUser, "hallo")
	if !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAppendRejectsUnknownRole(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.ResolveOrCreate(ctx, "s1", "anna-zank"); err != nil {
		t.Fatalf("ResolveOrCreate err: %v", err)
	}

	if _, err := store.Append(ctx, "s1", chat.Role("assistant"), "hallo"); !errors.Is(err, chatservice.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	store := chatservice.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.ResolveOrCreate(ctx, "s1", "anna-zank"); err != nil {
		t.Fatalf("ResolveOrCreate err: %v", err)
	}
	if _, err := store.Append(ctx, "s1", chat.RoleUser, "hallo"); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	if err := store.Reset(ctx, "s1"); err != nil {
		t.Fatalf("Reset err: %v", err)
	}
	if err := store.Reset(ctx, "s1"); err != nil {
		t.Fatalf("second Reset must be a no-op, got %v", err)
	}
	if err := store.Reset(ctx, "never-created"); err != nil {
		t.Fatalf("Reset of unknown id must not fail, got %v", err)
	}

	if _, err := store.History(ctx, "s1"); !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
}
