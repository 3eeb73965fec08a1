package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/quickfind/internal/event/topic"
)

// Errors returned by the bus.
var (
	ErrInvalidTopic = errors.New("invalid topic")
	ErrNilHandler   = errors.New("nil handler")
	ErrNotTopic     = errors.New("event does not provide a topic")
	ErrPayloadType  = errors.New("unexpected event payload type")
	ErrBusClosed    = errors.New("bus is closed")
)

// HandlerPanicError reports a recovered handler panic.
type HandlerPanicError struct {
	Topic topic.Topic
	Value any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler for %s panicked: %v", e.Topic, e.Value)
}

// Subscription is an active handler registration.
type Subscription struct {
	id       uint64
	pattern  topic.Topic
	priority Priority
	handler  Handler
	bus      *Bus
}

// Pattern returns the topic pattern the subscription matches.
func (s *Subscription) Pattern() topic.Topic {
	return s.pattern
}

// Unsubscribe removes the subscription from its bus.
func (s *Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.unsubscribe(s.id)
	}
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) {
		s.priority = p
	}
}

// Bus delivers events synchronously to subscribed handlers.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID uint64
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for topics matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	b.nextID++
	sub := &Subscription{
		id:       b.nextID,
		pattern:  pattern,
		priority: PriorityNormal,
		handler:  handler,
		bus:      b,
	}
	for _, opt := range opts {
		opt(sub)
	}
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	return sub, nil
}

// SubscribeFunc is a convenience wrapper around Subscribe.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers event to every matching handler. All handlers run even
// if some fail; their errors are joined.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotTopic, event)
	}
	t := tp.EventTopic()

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if t.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, sub := range matched {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := safeHandle(ctx, t, sub.handler, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops every subscription. Later publishes fail with ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = nil
}

func safeHandle(ctx context.Context, t topic.Topic, h Handler, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanicError{Topic: t, Value: r}
		}
	}()
	return h.Handle(ctx, event)
}
