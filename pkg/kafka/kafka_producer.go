package kafka

import (
	"context"

	"robodesk/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Kafka 生产者服务
// 定义接口，方便测试和替换
type ProducerService interface {
	Produce(ctx context.Context, key, value []byte) error
	Close()
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokerURL, topic string) ProducerService {
	return &kafkaProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokerURL),
			Topic:                  topic,
			Balancer:               &kafka.Hash{}, // 相同key进入同一个Partition，保证同一条记录的变更有序
			AllowAutoTopicCreation: true,
		},
	}
}

// Produce 写入一条已经序列化的消息
func (p *kafkaProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

func (p *kafkaProducer) Close() {
	if err := p.writer.Close(); err != nil {
		logger.Errorf("Error closing kafka writer: %v", err)
	}
}
