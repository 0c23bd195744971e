// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/models"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewPublisher_NoURL_ReturnsNop(t *testing.T) {
	p, err := NewPublisher(config.Broker{}, logger.Nop())
	require.NoError(t, err)

	_, ok := p.(*nopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.Publish(context.Background(), models.AuthEvent{Type: models.EventUserSignedUp}))
	assert.NoError(t, p.Close())
}

func TestNewAMQPPublisher_BadURL(t *testing.T) {
	_, err := NewAMQPPublisher(config.Broker{AMQPURL: "not-a-url", Queue: "q"}, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
}

func TestAMQPPublisher_DeclaresDurableQueue(t *testing.T) {
	ch := &fakeChannel{}
	_, err := newAMQPPublisher(ch, "auth.events", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"auth.events"}, ch.declared)
}

func TestAMQPPublisher_DeclareFailure(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newAMQPPublisher(ch, "auth.events", logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "auth.events", logger.Nop())
	require.NoError(t, err)

	event := models.AuthEvent{
		Type:       models.EventUserLockedOut,
		Email:      "a@example.com",
		IPAddress:  "10.0.0.1",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "auth.events", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "user.locked_out", msg.Type)

	var got models.AuthEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, event, got)
}

func TestAMQPPublisher_PublishFailure(t *testing.T) {
	ch := &fakeChannel{publishErr: amqp.ErrClosed}
	p, err := newAMQPPublisher(ch, "auth.events", logger.Nop())
	require.NoError(t, err)

	err = p.Publish(context.Background(), models.AuthEvent{Type: models.EventUserSignedUp})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPublishFailed)
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "q", logger.Nop())
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
