package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tourly/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// BookingConfirmedMessage is the payload published after a booking settles.
type BookingConfirmedMessage struct {
	MessageID string    `json:"message_id"`
	BookingID string    `json:"booking_id"`
	TourID    string    `json:"tour_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Notice    string    `json:"notice"`
	CreatedAt time.Time `json:"created_at"`
}

// Producer publishes booking confirmations to Kafka. The service runs
// without it when Kafka is unreachable; confirmations are then only logged.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    topic,
	}, nil
}

// PublishBookingConfirmed satisfies the booking service's Notifier contract.
// Keyed by user id so one user's notifications stay ordered.
func (p *Producer) PublishBookingConfirmed(ctx context.Context, bookingID, tourID, userID string, amount int64, currency string) error {
	msg := BookingConfirmedMessage{
		MessageID: uuid.New().String(),
		BookingID: bookingID,
		TourID:    tourID,
		UserID:    userID,
		Amount:    amount,
		Currency:  currency,
		Notice:    "Бронирование успешно завершено! Организатор свяжется с вами в ближайшее время.",
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(userID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("message_type"), Value: []byte("booking_confirmed")},
			{Key: []byte("message_id"), Value: []byte(msg.MessageID)},
		},
		Timestamp: msg.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	logger.GetDefault().Info("booking confirmation published",
		"booking_id", bookingID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
