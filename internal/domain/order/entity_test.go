package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	all := []Status{
		StatusProcessingPayment,
		StatusProcessingOrder,
		StatusShipped,
		StatusOrderReceived,
		StatusCancelled,
	}

	allowed := map[Status]Status{
		StatusProcessingPayment: StatusProcessingOrder,
		StatusProcessingOrder:   StatusShipped,
		StatusShipped:           StatusOrderReceived,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from] == to && to != ""
			if to == StatusCancelled {
				want = !from.IsTerminal()
			}

			assert.Equalf(t, want, from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusOrderReceived.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.False(t, StatusProcessingPayment.IsTerminal())
	assert.False(t, StatusProcessingOrder.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestPredecessors(t *testing.T) {
	assert.Empty(t, Predecessors(StatusProcessingPayment))
	assert.Equal(t, []Status{StatusProcessingPayment}, Predecessors(StatusProcessingOrder))
	assert.Equal(t, []Status{StatusProcessingOrder}, Predecessors(StatusShipped))
	assert.Equal(t, []Status{StatusShipped}, Predecessors(StatusOrderReceived))

	assert.ElementsMatch(t,
		[]Status{StatusProcessingPayment, StatusProcessingOrder, StatusShipped},
		Predecessors(StatusCancelled))
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{
		StatusProcessingPayment, StatusProcessingOrder, StatusShipped,
		StatusOrderReceived, StatusCancelled,
	} {
		assert.True(t, s.IsValid())
	}

	assert.False(t, Status("delivered").IsValid())
	assert.False(t, Status("").IsValid())
}
