package kafka

import (
	"context"
	"time"

	"robodesk/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// ConsumerService 定义了消费 Kafka 消息的通用接口
type ConsumerService interface {
	// Consume 启动一个协程消费指定主题，将消息发送到返回的通道
	Consume(ctx context.Context, topic string, groupID string) (<-chan kafka.Message, error)
	Close()
}

type kafkaConsumer struct {
	brokerURL string
}

func NewKafkaConsumer(brokerURL string) ConsumerService {
	return &kafkaConsumer{
		brokerURL: brokerURL,
	}
}

func (c *kafkaConsumer) Consume(ctx context.Context, topic string, groupID string) (<-chan kafka.Message, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{c.brokerURL},
		Topic:    topic,
		GroupID:  groupID, // 每个实例使用不同的GroupID，都能收到全部变更
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
		// 从最新的 offset 开始消费，历史变更没有意义
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second, // 自动提交
		MaxAttempts:    3,
	})
	outputCh := make(chan kafka.Message, 1000)

	go func() {
		defer close(outputCh)
		defer r.Close()
		for {
			m, err := r.ReadMessage(ctx) // ReadMessage 在消费组模式下会按 CommitInterval 提交
			if err != nil {
				// 服务关闭
				if ctx.Err() != nil {
					break
				}
				logger.Errorf("Kafka read error on topic %s: %v", topic, err)
				time.Sleep(time.Second)
				continue
			}

			select {
			case outputCh <- m:
			case <-ctx.Done():
				return
			default:
				// 队列满则丢弃，下一轮自动提交会越过它
				logger.Warnf("kafka consumer queue is full, message dropped")
			}
		}
		logger.Infof("Kafka Consumer for topic %s finished.", topic)
	}()

	return outputCh, nil
}

func (c *kafkaConsumer) Close() {
	logger.Info("Kafka Consumer Service closing...")
}
