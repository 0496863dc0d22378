package app

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEventQueue_PreservesOrder(t *testing.T) {
	q := newEventQueue()
	defer q.close()

	const rounds = 500
	var mu sync.Mutex
	var got []tea.Msg
	go q.run(func(msg tea.Msg) {
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
	})

	for i := 0; i < rounds; i++ {
		q.push(i)
	}

	eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == rounds
	})
	for i, msg := range got {
		if msg != i {
			t.Fatalf("message %d delivered out of order: %v", i, msg)
		}
	}
}

func TestEventQueue_PushFromDeliverDoesNotBlock(t *testing.T) {
	q := newEventQueue()
	defer q.close()

	delivered := make(chan tea.Msg, 4)
	go q.run(func(msg tea.Msg) {
		if msg == "first" {
			q.push("second")
		}
		delivered <- msg
	})

	q.push("first")
	for _, want := range []string{"first", "second"} {
		select {
		case msg := <-delivered:
			if msg != want {
				t.Fatalf("expected %q, got %v", want, msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%q never delivered", want)
		}
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
