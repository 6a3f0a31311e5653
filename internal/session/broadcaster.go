// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// subscriberBufferSize is the channel buffer for each subscriber.
const subscriberBufferSize = 64

// broadcaster fans events out to subscribers without blocking the publisher.
type broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]*subscription
	closed      bool
	logger      *slog.Logger

	// watchers tracks the goroutines waiting on subscriber contexts.
	watchers sync.WaitGroup
}

// subscription is one subscriber. done closes when it is removed.
type subscription struct {
	ch   chan Event
	done chan struct{}
}

func (s *subscription) end() {
	close(s.ch)
	close(s.done)
}

func newBroadcaster(logger *slog.Logger) *broadcaster {
	return &broadcaster{
		subscribers: make(map[string]*subscription),
		logger:      logger,
	}
}

// subscribe registers a subscriber. The subscription ends when ctx is
// cancelled or the returned function is called; its channel is then closed.
func (b *broadcaster) subscribe(ctx context.Context) (<-chan Event, func()) {
	subID := uuid.NewString()
	sub := &subscription{
		ch:   make(chan Event, subscriberBufferSize),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.end()
		return sub.ch, func() {}
	}
	b.subscribers[subID] = sub
	b.watchers.Add(1)
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { b.unsubscribe(subID) })
	}

	go func() {
		defer b.watchers.Done()
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.done:
		}
	}()

	return sub.ch, unsubscribe
}

// publish delivers ev to every subscriber whose buffer has room.
func (b *broadcaster) publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subscribers {
		select {
		case sub.ch <- ev:
		default:
			b.logger.Debug("dropped event for slow subscriber", "sub_id", id, "kind", ev.Kind)
		}
	}
}

func (b *broadcaster) unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subscribers[subID]
	if !ok {
		return
	}
	delete(b.subscribers, subID)
	sub.end()

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.subscribers {
		sub.end()
		delete(b.subscribers, id)
	}
	b.closed = true
}
