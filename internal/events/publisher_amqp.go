// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/models"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events as persistent JSON messages to a durable
// queue on the default exchange. One channel is shared and guarded by a
// mutex, amqp channels are not safe for concurrent publishing.
type AMQPPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
	logger  *logger.Logger
}

// NewAMQPPublisher dials the broker, opens a channel and declares the queue.
func NewAMQPPublisher(cfg config.Broker, log *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Err(err).Str("func", "NewAMQPPublisher").Msg("dial failed")
		return nil, fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Err(err).Str("func", "NewAMQPPublisher").Msg("channel open failed")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
	}

	p, err := newAMQPPublisher(ch, cfg.Queue, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	log.Info().Str("queue", cfg.Queue).Msg("connected to message broker")
	return p, nil
}

func newAMQPPublisher(ch amqpChannel, queue string, log *logger.Logger) (*AMQPPublisher, error) {
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		log.Err(err).Str("func", "newAMQPPublisher").Str("queue", queue).Msg("queue declare failed")
		_ = ch.Close()
		return nil, fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
	}

	return &AMQPPublisher{channel: ch, queue: queue, logger: log}, nil
}

// Publish implements [Publisher].
func (p *AMQPPublisher) Publish(ctx context.Context, event models.AuthEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		p.logger.Err(err).Str("event", string(event.Type)).Msg("publish failed")
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
