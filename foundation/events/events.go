// Package events allows sessions to register for and receive the outbound
// messages produced by the simulation.
package events

import (
	"fmt"
	"sync"
)

// Message represents a named payload delivered to a session.
type Message struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// Events maintains a mapping of session ids and channels so the per session
// write loops can register and receive messages.
type Events struct {
	m  map[string]chan Message
	mu sync.RWMutex
}

// New constructs an events value for registering and receiving messages.
func New() *Events {
	return &Events{
		m: make(map[string]chan Message),
	}
}

// Shutdown closes and removes all channels that were provided by the call
// to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a session id and returns a channel that can be used to
// receive messages for that session.
func (evt *Events) Acquire(id string) chan Message {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	// A message is dropped when the session's write loop is not keeping
	// up. This buffer gives the write loop enough room to ride out a slow
	// websocket send without losing messages.
	const messageBuffer = 100

	evt.m[id] = make(chan Message, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by the call
// to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send delivers a message to the specified session only. Send will not
// block waiting for the receiver.
func (evt *Events) Send(id string, msg Message) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	ch, exists := evt.m[id]
	if !exists {
		return
	}

	select {
	case ch <- msg:
	default:
	}
}

// Broadcast delivers a message to every registered session. Delivery is
// best effort: a session that is not ready to receive is skipped and never
// holds up the others.
func (evt *Events) Broadcast(msg Message) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- msg:
		default:
		}
	}
}
