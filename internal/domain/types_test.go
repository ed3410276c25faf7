package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veritrace/veritrace/internal/domain"
)

func TestIsValidState(t *testing.T) {
	for _, s := range []domain.State{
		domain.StateUnbind,
		domain.StateBind,
		domain.StateSend,
		domain.StateExpressed,
		domain.StateReceived,
	} {
		assert.True(t, domain.IsValidState(s), "state %s should be valid", s)
	}

	assert.False(t, domain.IsValidState("SHIPPED"))
	assert.False(t, domain.IsValidState(""))
}

func TestIsValidOperation(t *testing.T) {
	for _, op := range []domain.Operation{
		domain.OperationBind,
		domain.OperationSend,
		domain.OperationExpress,
		domain.OperationReceive,
	} {
		assert.True(t, domain.IsValidOperation(op))
	}

	assert.False(t, domain.IsValidOperation("unbind"))
	assert.False(t, domain.IsValidOperation(""))
}

func TestIsValidReceiverType(t *testing.T) {
	assert.True(t, domain.IsValidReceiverType(domain.ReceiverTypeBusiness))
	assert.True(t, domain.IsValidReceiverType(domain.ReceiverTypeConsumer))
	assert.False(t, domain.IsValidReceiverType("courier"))
}

func TestCodedError_Is(t *testing.T) {
	wrapped := fmt.Errorf("loading code: %w", domain.ErrCodeNotFound)
	assert.True(t, errors.Is(wrapped, domain.ErrCodeNotFound))
	assert.False(t, errors.Is(wrapped, domain.ErrConflict))

	detailed := domain.ErrChildInvalid.WithDetail("child %s in state %s", "abc", domain.StateSend)
	assert.True(t, errors.Is(detailed, domain.ErrChildInvalid))
	assert.Contains(t, detailed.Error(), "18007")
	assert.Contains(t, detailed.Error(), "abc")
}

func TestEventTypeForOperation(t *testing.T) {
	assert.Equal(t, domain.HandoffEventBound, domain.EventTypeForOperation(domain.OperationBind))
	assert.Equal(t, domain.HandoffEventSent, domain.EventTypeForOperation(domain.OperationSend))
	assert.Equal(t, domain.HandoffEventExpressed, domain.EventTypeForOperation(domain.OperationExpress))
	assert.Equal(t, domain.HandoffEventReceived, domain.EventTypeForOperation(domain.OperationReceive))
	assert.Equal(t, domain.HandoffEventType(""), domain.EventTypeForOperation("noop"))
}
