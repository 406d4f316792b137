package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"furk/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Message is a key plus a JSON-serializable payload. Booking events key on
// the booking ID so per-booking ordering is preserved within a partition.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal message value")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

func DecodeKafkaMessage[T any](msg kafkaGo.Message) (Message, error) {
	var payload T

	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal message value")

		return Message{}, fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	return Message{
		Key:   string(msg.Key),
		Value: payload,
	}, nil
}

// Client publishes and consumes domain events. Sends are async fire-and-
// forget; delivery failures are logged, not surfaced to the request path.
type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message))
	Reader(consumerGroup, topic string) *kafkaGo.Reader
}

type kafkaClientImpl struct {
	config    *config.Config
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport
	address   net.Addr
}

func New(config *config.Config) Client {
	mechanism := plain.Mechanism{
		Username: config.Kafka.SASL.Username,
		Password: config.Kafka.SASL.Password,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: &kafkaGo.Dialer{
			DualStack:     true,
			SASLMechanism: mechanism,
		},
		transport: &kafkaGo.Transport{
			SASL: mechanism,
		},
		address: kafkaGo.TCP(config.Kafka.Brokers...),
	}
}

func (k *kafkaClientImpl) Reader(consumerGroup, topic string) *kafkaGo.Reader {
	if topic == "" {
		log.Error().Msg("topic name cannot be empty when creating Kafka reader")

		return nil
	}

	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	writer := &kafkaGo.Writer{
		Addr:                   k.address,
		Topic:                  topic,
		Transport:              k.transport,
		AllowAutoTopicCreation: true,
		Async:                  true,
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to encode Kafka message")

			return fmt.Errorf("failed to encode Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	if err = writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to send messages to Kafka")

		return fmt.Errorf("failed to send messages to Kafka: %w", err)
	}

	log.Info().Str("topic", topic).Int("count", len(msgs)).Msg("messages sent to Kafka")

	return nil
}

// Consume reads topic until ctx is cancelled. Each message is handled on its
// own goroutine; a read error skips the message and keeps the loop alive.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message)) {
	reader := k.Reader(consumerGroup, topic)
	if reader == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			if err := reader.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Kafka reader")
			}

			return
		default:
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("failed to read message from Kafka")

				continue
			}

			log.Info().Str("topic", topic).Str("key", string(msg.Key)).Msg("received message from Kafka")

			go handler(msg)
		}
	}
}
