package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/segmentio/kafka-go"
)

// MessageWriter реализуется *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka публикует события booking_created
type Kafka struct {
	writer MessageWriter
}

// NewKafkaWriter создаёт writer для топика событий о бронированиях
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

func NewKafka(writer MessageWriter) *Kafka {
	return &Kafka{writer: writer}
}

func (k *Kafka) Name() string { return "kafka" }

// Send пишет событие в JSON с ключом по id бронирования
func (k *Kafka) Send(ctx context.Context, event model.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.Booking.ID, 10)),
		Value: data,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("write booking event to kafka: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
