package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/willowbyte/gardenbloom/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps an event bus to add retry logic and dead-letter
// queuing. Gameplay never blocks on event delivery: Publish returns nil
// once the event is accepted, and retries run in the background.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // protects dead-letter file writes
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	return &ResilientPublisher{inner: inner, config: config}
}

// Publish attempts delivery; a failure starts a detached retry loop.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	go p.retryLoop(event)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	// Detached context: the originating request may already be done.
	ctx := context.Background()
	log := logger.FromContext(ctx)

	var lastErr error
	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i))

		if lastErr = p.inner.Publish(ctx, event); lastErr == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", i)
			return
		}
	}

	log.Warn(LogMsgEventRetryExhausted, "event_type", event.Type, "error", lastErr)
	p.writeToDeadLetter(event, lastErr)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event, lastErr error) {
	if p.config.DeadLetterPath == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		logger.FromContext(context.Background()).Error("Failed to open dead letter file", "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	type deadLetterEntry struct {
		Timestamp time.Time `json:"timestamp"`
		Event     Event     `json:"event"`
		LastError string    `json:"last_error,omitempty"`
	}
	entry := deadLetterEntry{Timestamp: time.Now(), Event: event}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		logger.FromContext(context.Background()).Error("Failed to write to dead letter file", "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
