package session

import (
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStatusResetsToIdle(t *testing.T) {
	status := NewStatus("Ready", 20*time.Millisecond)
	defer status.Stop()

	if status.Current() != "Ready" {
		t.Fatalf("expected idle message, got %q", status.Current())
	}

	status.Set("Saved a.txt")
	if status.Current() != "Saved a.txt" {
		t.Fatalf("expected new message, got %q", status.Current())
	}

	waitFor(t, func() bool { return status.Current() == "Ready" })
}

func TestStatusNewerMessageWins(t *testing.T) {
	status := NewStatus("Ready", 400*time.Millisecond)
	defer status.Stop()

	status.Set("first")
	time.Sleep(200 * time.Millisecond)
	status.Set("second")
	time.Sleep(300 * time.Millisecond)

	// the first message's timer has expired but must not clear the second
	if got := status.Current(); got != "second" {
		t.Fatalf("expected second message to still show, got %q", got)
	}
	waitFor(t, func() bool { return status.Current() == "Ready" })
}

func TestStatusOnChange(t *testing.T) {
	status := NewStatus("Ready", 10*time.Millisecond)
	defer status.Stop()

	var mu sync.Mutex
	var seen []string
	status.OnChange(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, msg)
	})

	status.Set("hello")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	})

	mu.Lock()
	defer mu.Unlock()
	if seen[0] != "hello" || seen[1] != "Ready" {
		t.Fatalf("unexpected notifications: %v", seen)
	}
}

func TestStatusStop(t *testing.T) {
	status := NewStatus("Ready", 10*time.Millisecond)
	status.Set("stay")
	status.Stop()

	time.Sleep(50 * time.Millisecond)
	if status.Current() != "stay" {
		t.Fatalf("expected stopped status to keep its message, got %q", status.Current())
	}
}
