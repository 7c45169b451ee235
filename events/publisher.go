// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package events publishes vote transitions to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// VoteEvent describes one applied vote transition
type VoteEvent struct {
	PollID     string    `json:"poll_id"`
	OptionID   string    `json:"option_id"`
	UserID     int64     `json:"user_id"`
	Transition string    `json:"transition"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev VoteEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, VoteEvent) error { return nil }
func (NopPublisher) Close() error                             { return nil }

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher writes vote events to topic. Messages are keyed by poll
// id, so the hash balancer keeps each poll's events on one partition and in order.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		Compression:  kafka.Snappy,
	}

	return &KafkaPublisher{writer: w}
}

func (kp *KafkaPublisher) Publish(ctx context.Context, ev VoteEvent) error {
	msg, err := Encode(ev)
	if err != nil {
		return err
	}

	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

func (kp *KafkaPublisher) Close() error {
	if err := kp.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}

// Encode builds the Kafka message for ev
func Encode(ev VoteEvent) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal vote event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(ev.PollID),
		Value: value,
	}, nil
}
