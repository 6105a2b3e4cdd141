// Package scheduler provides the background timer that feeds worker events
// to the user interface.
package scheduler

import (
	"time"

	"github.com/oszuidwest/zwfm-wavsplit/internal/splitter"
	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

// drainInterval is how often queued worker events are delivered.
const drainInterval = 100 * time.Millisecond

// MessagePump periodically drains the worker event queue and hands each
// event to the handler. The handler runs on the pump goroutine.
type MessagePump struct {
	queue   *splitter.Queue
	handler func(splitter.Event)
	ticker  *time.Ticker
	done    chan bool
}

// NewMessagePump creates a new message pump.
func NewMessagePump(queue *splitter.Queue, handler func(splitter.Event)) *MessagePump {
	return &MessagePump{
		queue:   queue,
		handler: handler,
		done:    make(chan bool),
	}
}

// Start begins draining the queue every 100ms.
func (p *MessagePump) Start() {
	logger.Debug("Starting message pump (drains every %v)", drainInterval)

	// Deliver anything already queued, then poll.
	p.deliver()

	p.ticker = time.NewTicker(drainInterval)

	go func() {
		for {
			select {
			case <-p.ticker.C:
				p.deliver()
			case <-p.done:
				return
			}
		}
	}()
}

// Stop halts the pump. Events still queued stay queued.
func (p *MessagePump) Stop() {
	logger.Debug("Stopping message pump")
	if p.ticker != nil {
		p.ticker.Stop()
	}
	p.done <- true
}

func (p *MessagePump) deliver() {
	for _, ev := range p.queue.Drain() {
		p.handler(ev)
	}
}
