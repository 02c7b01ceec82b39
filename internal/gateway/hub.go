package gateway

import (
	"sync"
	"sync/atomic"
	"time"

	"robodesk/internal/metrics"
	"robodesk/pkg/logger"
)

const subscriberBuffer = 64

// Hub 进程内的变更分发，按表和过滤条件推送给订阅者
type Hub struct {
	origin string

	mu      sync.RWMutex
	subs    map[string]map[uint64]*subscriber // table -> id -> subscriber
	seq     atomic.Uint64
	forward []func(Change)
}

type subscriber struct {
	id       uint64
	table    string
	filter   Filter
	onChange func(Change)
	ch       chan Change
	done     chan struct{}
	once     sync.Once
	hub      *Hub
}

// NewHub origin 标识当前实例，用于跨实例转发时去重
func NewHub(origin string) *Hub {
	return &Hub{
		origin: origin,
		subs:   make(map[string]map[uint64]*subscriber),
	}
}

func (h *Hub) Origin() string { return h.origin }

// Forward 本实例产生的变更额外交给fn（例如发送到kafka）
func (h *Hub) Forward(fn func(Change)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forward = append(h.forward, fn)
}

func (h *Hub) Subscribe(table string, filter Filter, onChange func(Change)) Subscription {
	s := &subscriber{
		id:       h.seq.Add(1),
		table:    table,
		filter:   filter,
		onChange: onChange,
		ch:       make(chan Change, subscriberBuffer),
		done:     make(chan struct{}),
		hub:      h,
	}

	h.mu.Lock()
	if h.subs[table] == nil {
		h.subs[table] = make(map[uint64]*subscriber)
	}
	h.subs[table][s.id] = s
	h.mu.Unlock()

	go s.loop()
	return s
}

// Publish 分发给本地订阅者，慢的订阅者会丢弃事件而不阻塞写入方
func (h *Hub) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now()
	}
	if c.Origin == "" {
		c.Origin = h.origin
	}

	h.mu.RLock()
	for _, s := range h.subs[c.Table] {
		if !s.filter.Matches(c.Record) {
			continue
		}
		select {
		case s.ch <- c:
		default:
			metrics.HubDropped.Inc()
			logger.Warnf("hub: subscriber %d on %s is full, change dropped", s.id, c.Table)
		}
	}
	forward := h.forward
	h.mu.RUnlock()

	if c.Origin == h.origin {
		for _, fn := range forward {
			fn(c)
		}
	}
}

// Len 当前订阅数
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, m := range h.subs {
		n += len(m)
	}
	return n
}

func (s *subscriber) loop() {
	for {
		select {
		case <-s.done:
			return
		case c := <-s.ch:
			// Unsubscribe 之后不再推送
			select {
			case <-s.done:
				return
			default:
			}
			s.onChange(c)
		}
	}
}

func (s *subscriber) Unsubscribe() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		if m := s.hub.subs[s.table]; m != nil {
			delete(m, s.id)
			if len(m) == 0 {
				delete(s.hub.subs, s.table)
			}
		}
		s.hub.mu.Unlock()
		close(s.done)
	})
}
