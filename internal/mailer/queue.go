package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type queuedMessage struct {
	msg     Message
	retries int
}

// Queue delivers messages asynchronously at a bounded rate so a burst of
// contact submissions cannot stall request handling or hammer the SMTP relay.
type Queue struct {
	mailer   *Mailer
	ch       chan queuedMessage
	rate     time.Duration
	maxRetry int
}

func NewQueue(m *Mailer, rate time.Duration, bufferSize, maxRetry int) *Queue {
	return &Queue{
		mailer:   m,
		ch:       make(chan queuedMessage, bufferSize),
		rate:     rate,
		maxRetry: maxRetry,
	}
}

// Start processes queued messages at the configured rate until ctx is
// cancelled. On shutdown it drains any remaining messages before returning.
func (q *Queue) Start(ctx context.Context) {
	ticker := time.NewTicker(q.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			q.drain()
			return
		case <-ticker.C:
			select {
			case item := <-q.ch:
				q.attempt(item)
			default:
				// no message ready; wait for next tick
			}
		}
	}
}

// Enqueue adds a message to the queue. Delivery is best-effort: a full queue
// returns an error for the caller to log, never to surface to a client.
func (q *Queue) Enqueue(msg Message) error {
	select {
	case q.ch <- queuedMessage{msg: msg}:
		return nil
	default:
		return fmt.Errorf("mailer: queue full, message not queued")
	}
}

func (q *Queue) attempt(item queuedMessage) {
	err := q.mailer.Send(item.msg)
	if err == nil {
		return
	}

	if item.retries >= q.maxRetry {
		slog.Error("mailer: giving up on message", "subject", item.msg.Subject, "err", err)
		return
	}

	item.retries++
	slog.Warn("mailer: send failed, requeueing", "subject", item.msg.Subject,
		"attempt", item.retries, "err", err)
	select {
	case q.ch <- item:
	default:
		slog.Error("mailer: queue full, dropping retry", "subject", item.msg.Subject)
	}
}

func (q *Queue) drain() {
	for {
		select {
		case item := <-q.ch:
			if err := q.mailer.Send(item.msg); err != nil {
				slog.Error("mailer: drain send failed", "subject", item.msg.Subject, "err", err)
			}
		default:
			return
		}
	}
}
