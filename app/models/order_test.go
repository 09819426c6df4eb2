package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderForwardTransitions(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	now := time.Now()

	require.NoError(t, order.Transition(OrderStatusProcessing, now))
	assert.Equal(t, OrderStatusProcessing, order.Status)
	require.NotNil(t, order.ProcessingAt)

	require.NoError(t, order.Transition(OrderStatusShipped, now))
	require.NotNil(t, order.ShippedAt)

	require.NoError(t, order.Transition(OrderStatusDelivered, now))
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, "Delivered", order.StatusLabel())
}

func TestOrderCannotSkipStates(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	err := order.Transition(OrderStatusShipped, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = order.Transition(OrderStatusDelivered, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Nil(t, order.ShippedAt)
}

func TestOrderCannotMoveBackwards(t *testing.T) {
	order := &Order{Status: OrderStatusShipped}

	err := order.Transition(OrderStatusProcessing, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderStatusShipped, order.Status)
}

func TestOrderCancellation(t *testing.T) {
	for _, status := range []int{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped} {
		order := &Order{Status: status}
		require.NoError(t, order.Transition(OrderStatusCancelled, time.Now()),
			"should cancel from %s", OrderStatusLabels[status])
		assert.NotNil(t, order.CancelledAt)
	}
}

func TestOrderTerminalStates(t *testing.T) {
	delivered := &Order{Status: OrderStatusDelivered}
	assert.ErrorIs(t, delivered.Transition(OrderStatusCancelled, time.Now()), ErrInvalidTransition)

	cancelled := &Order{Status: OrderStatusCancelled}
	assert.ErrorIs(t, cancelled.Transition(OrderStatusCancelled, time.Now()), ErrInvalidTransition)
	assert.ErrorIs(t, cancelled.Transition(OrderStatusProcessing, time.Now()), ErrInvalidTransition)
}
