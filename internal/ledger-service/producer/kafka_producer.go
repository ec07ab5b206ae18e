package producer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/caderneta/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
	Topic  string
}

func NewKafkaPublisher(w *kafka.Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishLedgerChanged avisa os workers que a caderneta de um perfil mudou.
// A chave é o profileId para manter a ordem por perfil na partição.
func (p *KafkaPublisher) PublishLedgerChanged(ctx context.Context, e events.LedgerChanged) error {
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.ProfileID),
		Value: b,
	})
}
