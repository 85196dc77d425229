package messaging

import (
	"context"
	"maps"
	"sync"
	"time"
)

type memoryMessage struct {
	topic   string
	key     []byte
	body    []byte
	headers map[string]string
	at      time.Time
}

func (m *memoryMessage) Topic() string              { return m.topic }
func (m *memoryMessage) Key() []byte                { return m.key }
func (m *memoryMessage) Body() []byte               { return m.body }
func (m *memoryMessage) Headers() map[string]string { return m.headers }
func (m *memoryMessage) Timestamp() time.Time       { return m.at }
func (*memoryMessage) Ack(context.Context) error    { return nil }
func (*memoryMessage) Nack(context.Context) error   { return nil }

type memorySub struct {
	group string
	ch    chan *memoryMessage
}

// Memory delivers messages to consumers in the same process. Each message
// reaches one consumer per group; consumers without a group each get a copy.
// Nothing is persisted, so messages published with no consumer are dropped.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	next   map[string]int
	closed bool
	done   chan struct{}
}

func NewMemory() *Memory {
	return &Memory{
		subs: map[string][]*memorySub{},
		next: map[string]int{},
		done: make(chan struct{}),
	}
}

func (m *Memory) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	targets, err := m.pick(topic)
	if err != nil {
		return err
	}

	for _, sub := range targets {
		mm := &memoryMessage{
			topic:   topic,
			key:     msg.Key,
			body:    msg.Body,
			headers: maps.Clone(msg.Headers),
			at:      time.Now(),
		}
		select {
		case sub.ch <- mm:
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return ErrClosed
		}
	}
	return nil
}

func (m *Memory) pick(topic string) ([]*memorySub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	byGroup := map[string][]*memorySub{}
	var out []*memorySub
	for _, s := range m.subs[topic] {
		if s.group == "" {
			out = append(out, s)
			continue
		}
		byGroup[s.group] = append(byGroup[s.group], s)
	}
	for group, members := range byGroup {
		k := topic + "\x00" + group
		out = append(out, members[m.next[k]%len(members)])
		m.next[k]++
	}
	return out, nil
}

func (m *Memory) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	co := newConsumeOptions(opts...)
	sub := &memorySub{group: co.group, ch: make(chan *memoryMessage, 64)}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.subs[topic] = append(m.subs[topic], sub)
	m.mu.Unlock()

	defer m.remove(topic, sub)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case msg := <-sub.ch:
					dispatch(ctx, "memory", handler, msg, co.autoAck)
				case <-ctx.Done():
					return
				case <-m.done:
					return
				}
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrClosed
}

func (m *Memory) remove(topic string, sub *memorySub) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := m.subs[topic]
	for i, s := range subs {
		if s == sub {
			m.subs[topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}
