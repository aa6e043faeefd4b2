package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campaign-site/pkg/config"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

var ErrEmptyEmail = errors.New("email is required")

// Subscriber hands a newsletter signup to whatever mailing service is
// configured.
type Subscriber interface {
	Subscribe(ctx context.Context, event SubscriptionEvent) error
	Close() error
}

// SubscriptionEvent is the message sent to the mailing service.
type SubscriptionEvent struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscribe validates email and forwards it. Only emptiness is checked.
func Subscribe(ctx context.Context, sub Subscriber, email, source string) error {
	if err := validate.Var(email, "required"); err != nil {
		return ErrEmptyEmail
	}
	event := SubscriptionEvent{
		ID:        uuid.NewString(),
		Email:     email,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	if err := sub.Subscribe(ctx, event); err != nil {
		return fmt.Errorf("subscribing %s: %w", email, err)
	}
	return nil
}

// LocalSubscriber only logs. It is used when no mailing service is wired in,
// so a signup has no effect outside this process.
type LocalSubscriber struct{}

func (LocalSubscriber) Subscribe(ctx context.Context, event SubscriptionEvent) error {
	logrus.WithFields(logrus.Fields{
		"id":     event.ID,
		"source": event.Source,
	}).Info("Newsletter signup accepted (local only)")
	return nil
}

func (LocalSubscriber) Close() error { return nil }

// messageWriter is the part of kafka.Writer the subscriber uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSubscriber publishes signups to a Kafka topic consumed by the mailing
// service.
type KafkaSubscriber struct {
	writer messageWriter
}

func NewKafkaSubscriber(broker, topic string) *KafkaSubscriber {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	logrus.WithFields(logrus.Fields{"broker": broker, "topic": topic}).Info("Kafka subscriber initialized")
	return &KafkaSubscriber{writer: writer}
}

func (k *KafkaSubscriber) Subscribe(ctx context.Context, event SubscriptionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Email), // same address, same partition
		Value: payload,
		Time:  event.CreatedAt,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	logrus.WithField("id", event.ID).Info("Newsletter signup published")
	return nil
}

func (k *KafkaSubscriber) Close() error {
	logrus.Info("Closing Kafka subscriber")
	return k.writer.Close()
}

// NewSubscriber returns the Kafka subscriber when a broker is configured and
// the local one otherwise.
func NewSubscriber() Subscriber {
	if config.KafkaBroker == "" {
		return LocalSubscriber{}
	}
	return NewKafkaSubscriber(config.KafkaBroker, config.KafkaSubscribeTopic)
}
