package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/bank-ledger/internal/models"
	"github.com/sheikh-saqib/bank-ledger/internal/models/events"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublishTransactionCompleted(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	event := events.NewTransactionCompleted(models.Transaction{
		ID:          "tx-1",
		Kind:        models.TransactionTransfer,
		FromAccount: "1",
		ToAccount:   "2",
		Amount:      decimal.NewFromInt(3),
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	require.NoError(t, p.Publish(context.Background(), events.TransactionCompletedTopic, event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, events.TransactionCompletedTopic, msg.Topic)
	assert.Equal(t, []byte("tx-1"), msg.Key)

	var decoded events.TransactionCompleted
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "tx-1", decoded.TransactionID)
	assert.Equal(t, models.TransactionTransfer, decoded.Kind)
	assert.Equal(t, "2", decoded.ToAccount)
	assert.True(t, decimal.NewFromInt(3).Equal(decoded.Amount))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), "topic", map[string]string{"a": "b"})
	assert.ErrorIs(t, err, boom)
}

func TestPublishEncodeError(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	err := p.Publish(context.Background(), "topic", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestNewPublisherBatchTimeout(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"})
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, batchTimeout, w.BatchTimeout)
	assert.Less(t, w.BatchTimeout, 100*time.Millisecond)
	assert.Empty(t, w.Topic)
}
