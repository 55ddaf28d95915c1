// Package notify is the process-wide queue of user-facing messages.
//
// Producers (the API client, dashboard commands) Push; a single display
// collaborator walks the queue with PeekFirst and Advance. Each notice can
// also be fanned out over a Watermill publisher for consumers that live
// outside the display loop.
package notify

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// DefaultTopic is where notices are published when a publisher is set.
const DefaultTopic = "fireme.notifications"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess:
		return true
	}
	return false
}

// Notice is one queued message. IDs are unique within a Channel and
// strictly increasing in push order.
type Notice struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel is a FIFO of notices. The zero value is not usable; use New.
type Channel struct {
	// pubMu is taken before mu and held across publish so the fan-out
	// sees notices in ID order.
	pubMu sync.Mutex

	mu     sync.Mutex
	queue  []Notice
	nextID uint64

	publisher message.Publisher
	topic     string
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Channel)

// WithPublisher fans every pushed notice out to pub on topic.
func WithPublisher(pub message.Publisher, topic string) Option {
	return func(c *Channel) {
		if topic == "" {
			topic = DefaultTopic
		}
		c.publisher = pub
		c.topic = topic
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Channel) { c.log = l }
}

// WithClock overrides time.Now for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Channel) { c.now = now }
}

func New(opts ...Option) *Channel {
	c := &Channel{
		nextID: 1,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push appends a notice and returns it. An empty or unknown severity is
// recorded as an error.
func (c *Channel) Push(msg string, sev Severity) Notice {
	if !sev.Valid() {
		sev = SeverityError
	}

	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	n := Notice{
		ID:        c.nextID,
		Message:   msg,
		Severity:  sev,
		CreatedAt: c.now(),
	}
	c.nextID++
	c.queue = append(c.queue, n)
	c.mu.Unlock()

	c.publish(n)
	return n
}

// PeekFirst returns the head of the queue without removing it.
func (c *Channel) PeekFirst() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return Notice{}, false
	}
	return c.queue[0], true
}

// Advance removes the head of the queue. No-op when empty.
func (c *Channel) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return
	}
	c.queue[0] = Notice{}
	c.queue = c.queue[1:]
}

func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Drain removes and returns everything queued, oldest first.
func (c *Channel) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.queue
	c.queue = nil
	return out
}

func (c *Channel) publish(n Notice) {
	if c.publisher == nil {
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		c.log.Warn("notice marshal failed", "err", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("notice_id", strconv.FormatUint(n.ID, 10))
	msg.Metadata.Set("severity", string(n.Severity))

	if err := c.publisher.Publish(c.topic, msg); err != nil {
		c.log.Warn("notice publish failed", "topic", c.topic, "notice_id", n.ID, "err", err)
	}
}
