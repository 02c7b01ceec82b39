package gateway

import (
	"bytes"
	"context"
	"time"

	"robodesk/pkg/kafka"
	"robodesk/pkg/logger"
	"robodesk/utils"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// 发往kafka的变更队列长度，满时丢弃并记录日志
const busQueue = 256

// Bus 多实例部署时通过kafka互相转发变更，最后观察到的写入为准
type Bus struct {
	hub      *Hub
	producer kafka.ProducerService
	consumer kafka.ConsumerService
	topic    string
	groupID  string
	out      chan Change
}

func NewBus(hub *Hub, producer kafka.ProducerService, consumer kafka.ConsumerService, topic, groupID string) *Bus {
	if groupID == "" {
		groupID = "robodesk-" + hub.Origin()
	}
	b := &Bus{hub: hub, producer: producer, consumer: consumer, topic: topic, groupID: groupID,
		out: make(chan Change, busQueue)}
	hub.Forward(b.enqueue)
	return b
}

// enqueue 在写入方的协程中调用，不能阻塞
func (b *Bus) enqueue(c Change) {
	select {
	case b.out <- c:
	default:
		logger.Warnf("bus: queue is full, %s change %v not forwarded", c.Table, c.ID)
	}
}

func (b *Bus) publish(c Change) {
	data, err := EncodeChange(c)
	if err != nil {
		logger.Errorf("bus: encode change: %v", err)
		return
	}
	key := []byte(c.Table + ":" + cast.ToString(c.ID))
	err = utils.Retry(3, 200*time.Millisecond, true, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return b.producer.Produce(ctx, key, data)
	})
	if err != nil {
		logger.Errorf("bus: publish %s change: %v", c.Table, err)
	}
}

// Run 发送本实例的变更，同时消费其它实例的变更并分发给本地订阅者，阻塞直到ctx结束
func (b *Bus) Run(ctx context.Context) error {
	msgs, err := b.consumer.Consume(ctx, b.topic, b.groupID)
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-b.out:
				b.publish(c)
			}
		}
	}()
	for m := range msgs {
		c, err := DecodeChange(m.Value)
		if err != nil {
			logger.Warnf("bus: decode change: %v", err)
			continue
		}
		if c.Origin == b.hub.Origin() {
			continue
		}
		b.hub.Publish(c)
	}
	return nil
}

func (b *Bus) Close() {
	b.producer.Close()
	b.consumer.Close()
}

func EncodeChange(c Change) ([]byte, error) {
	return json.Marshal(c)
}

func DecodeChange(data []byte) (Change, error) {
	var c Change
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err := dec.Decode(&c)
	return c, err
}
