package realtime

import (
	"testing"
	"time"
)

func TestHubFanOut(t *testing.T) {
	hub := NewHub(4)

	id1, ch1 := hub.Register()
	id2, ch2 := hub.Register()
	defer hub.Unregister(id1)
	defer hub.Unregister(id2)

	event := ReloadEvent{ItemCount: 42, ReloadedAt: time.Now(), Source: "import"}
	hub.Broadcast(event)

	for _, ch := range []<-chan ReloadEvent{ch1, ch2} {
		select {
		case got := <-ch:
			if got.ItemCount != 42 || got.Source != "import" {
				t.Fatalf("unexpected event: %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatal("listener did not receive broadcast")
		}
	}
}

func TestHubDropsForSlowListener(t *testing.T) {
	hub := NewHub(1)

	id, ch := hub.Register()
	defer hub.Unregister(id)

	// Fill the buffer, then overflow it. The second event is dropped, not
	// blocked on.
	hub.Broadcast(ReloadEvent{ItemCount: 1})
	done := make(chan struct{})
	go func() {
		hub.Broadcast(ReloadEvent{ItemCount: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow listener")
	}

	got := <-ch
	if got.ItemCount != 1 {
		t.Fatalf("expected first event retained, got %+v", got)
	}
	select {
	case extra := <-ch:
		t.Fatalf("expected overflow event dropped, got %+v", extra)
	default:
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub(0)

	id, ch := hub.Register()
	if hub.Size() != 1 {
		t.Fatalf("size = %d, want 1", hub.Size())
	}

	hub.Unregister(id)
	hub.Unregister(id) // second call must be a no-op

	if _, open := <-ch; open {
		t.Fatal("expected channel closed after unregister")
	}
	if hub.Size() != 0 {
		t.Fatalf("size = %d, want 0", hub.Size())
	}
}
