package ws

import (
	"testing"

	"github.com/vietddude/whalewatch/internal/core/domain"
)

func drain(s *Subscriber) []Message {
	var out []Message
	for {
		select {
		case msg := <-s.Messages():
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHub_SubscribeCount(t *testing.T) {
	h := NewHub(8)

	sub1 := h.Subscribe()
	if h.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", h.ClientCount())
	}

	// The subscriber whose connection triggered the change receives
	// the count update too.
	msgs := drain(sub1)
	if len(msgs) != 1 || msgs[0].Type != MessageClients || msgs[0].Payload.(int) != 1 {
		t.Errorf("expected clients:count 1 for new subscriber, got %+v", msgs)
	}

	sub2 := h.Subscribe()
	if h.ClientCount() != 2 {
		t.Errorf("expected 2 clients, got %d", h.ClientCount())
	}

	msgs = drain(sub1)
	if len(msgs) != 1 || msgs[0].Payload.(int) != 2 {
		t.Errorf("expected count update 2 for existing subscriber, got %+v", msgs)
	}

	h.Unsubscribe(sub2)
	if h.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", h.ClientCount())
	}
	msgs = drain(sub1)
	if len(msgs) != 1 || msgs[0].Payload.(int) != 1 {
		t.Errorf("expected count update 1 after unsubscribe, got %+v", msgs)
	}

	// Double unsubscribe is a no-op.
	h.Unsubscribe(sub2)
	if h.ClientCount() != 1 {
		t.Errorf("expected count unchanged after double unsubscribe, got %d", h.ClientCount())
	}
}

func TestHub_PublishWhale(t *testing.T) {
	h := NewHub(8)
	sub := h.Subscribe()
	drain(sub)

	ev := domain.WhaleEvent{Hash: "0x1", ValueEth: 150}
	h.PublishWhale(ev)

	msgs := drain(sub)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Type != MessageWhale {
		t.Errorf("expected whale message, got %s", msgs[0].Type)
	}
	if got := msgs[0].Payload.(domain.WhaleEvent); got.Hash != "0x1" {
		t.Errorf("expected event hash 0x1, got %s", got.Hash)
	}
}

func TestHub_PublishOrder(t *testing.T) {
	h := NewHub(8)
	sub := h.Subscribe()
	drain(sub)

	h.PublishWhale(domain.WhaleEvent{Hash: "0x1"})
	h.PublishPrice(3000)
	h.PublishStats(domain.Stats{WhaleCount: 1})

	msgs := drain(sub)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	want := []MessageType{MessageWhale, MessagePrice, MessageStats}
	for i, typ := range want {
		if msgs[i].Type != typ {
			t.Errorf("message %d: expected %s, got %s", i, typ, msgs[i].Type)
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub(1)
	slow := h.Subscribe()
	fast := h.Subscribe()
	drain(fast)

	// Fill the slow subscriber's buffer, then keep publishing.
	h.PublishPrice(1)
	h.PublishPrice(2)
	h.PublishPrice(3)

	// Fast subscriber buffer is 1 too, so it holds only one message,
	// but the publishes themselves never blocked.
	if got := len(drain(fast)); got != 1 {
		t.Errorf("expected 1 buffered message for fast subscriber, got %d", got)
	}
	_ = slow
}

func TestHub_UnsubscribedReceivesNothing(t *testing.T) {
	h := NewHub(8)
	sub := h.Subscribe()
	drain(sub)
	h.Unsubscribe(sub)

	h.PublishPrice(3000)

	// Channel is closed; only the zero value remains.
	if msg, ok := <-sub.Messages(); ok {
		t.Errorf("expected closed channel, got message %+v", msg)
	}
}
