package dialog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"
)

func TestDispatchSerializesPerConversation(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		n := inFlight.Add(1)
		for {
			cur := maxInFlight.Load()
			if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return lookup.Payload{Text: "ok"}, nil
	}}

	ctrl := NewController(gw, testConfig())
	ctrl.cooldown = 0
	sessions := NewSessions(ctrl)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions.Dispatch(context.Background(), 42, Event{Kind: EventMenu, Action: render.ActionAsk})
			sessions.Dispatch(context.Background(), 42, Event{Kind: EventText, Text: "why?"})
		}()
	}
	wg.Wait()

	if maxInFlight.Load() > 1 {
		t.Fatalf("events for one conversation must never interleave, saw %d in flight", maxInFlight.Load())
	}
}

func TestDistinctConversationsRunInParallel(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		started <- struct{}{}
		<-release
		return lookup.Payload{Text: "ok"}, nil
	}}

	ctrl := NewController(gw, testConfig())
	ctrl.cooldown = 0
	sessions := NewSessions(ctrl)

	for _, id := range []int64{1, 2} {
		sessions.Dispatch(context.Background(), id, Event{Kind: EventMenu, Action: render.ActionAsk})
	}

	var wg sync.WaitGroup
	for _, id := range []int64{1, 2} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sessions.Dispatch(context.Background(), id, Event{Kind: EventText, Text: "why?"})
		}(id)
	}

	// Both conversations must reach their lookup concurrently.
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("conversations blocked each other")
		}
	}
	close(release)
	wg.Wait()
}

func TestInProgress(t *testing.T) {
	sessions := NewSessions(NewController(&fakeGateway{}, testConfig()))

	if sessions.InProgress(7) {
		t.Fatal("unknown conversation must not be in progress")
	}

	sessions.Dispatch(context.Background(), 7, Event{Kind: EventMenu, Action: render.ActionWeather})
	if !sessions.InProgress(7) {
		t.Fatal("awaiting state must report in progress")
	}

	sessions.Dispatch(context.Background(), 7, Event{Kind: EventMenu, Action: render.ActionBack})
	if sessions.InProgress(7) {
		t.Fatal("main menu must not report in progress")
	}

	if sessions.Count() != 1 {
		t.Fatalf("expected 1 known conversation, got %d", sessions.Count())
	}
}
