package domain

import (
	"time"
)

// State represents the lifecycle state of a tracing code
type State string

const (
	// StateUnbind is the state of a freshly issued code with nothing bound to it
	StateUnbind State = "UNBIND"
	// StateBind is the state after products (or child codes) were bound by the factory
	StateBind State = "BIND"
	// StateSend is the state after the current owner handed the unit to a receiver
	StateSend State = "SEND"
	// StateExpressed is the state after a courier attached shipping details to the active leg
	StateExpressed State = "EXPRESSED"
	// StateReceived is the state after the receiver confirmed custody
	StateReceived State = "RECEIVED"
)

// IsValidState checks if a state is one of the known lifecycle states
func IsValidState(s State) bool {
	switch s {
	case StateUnbind, StateBind, StateSend, StateExpressed, StateReceived:
		return true
	}
	return false
}

// DefaultListStates are the states shown by listings when the caller does not
// filter explicitly: codes in flight, hiding unissued and closed records.
var DefaultListStates = []State{StateBind, StateSend, StateExpressed}

// Operation represents a requested state transition
type Operation string

const (
	OperationBind    Operation = "bind"
	OperationSend    Operation = "send"
	OperationExpress Operation = "express"
	OperationReceive Operation = "receive"
)

// IsValidOperation checks if an operation is one of the known transitions
func IsValidOperation(op Operation) bool {
	switch op {
	case OperationBind, OperationSend, OperationExpress, OperationReceive:
		return true
	}
	return false
}

// Role represents the platform role of an authenticated actor
type Role string

const (
	// RoleFactory marks manufacturers; the only role allowed to bind codes
	RoleFactory Role = "factory"
	// RoleBusiness marks distributors/retailers that take custody in transit
	RoleBusiness Role = "business"
	// RoleCourier marks shipping operators; the only role allowed to express
	RoleCourier Role = "courier"
	// RolePlatform marks platform operators; required for issuance and deletes
	RolePlatform Role = "platform"
)

// Actor is the authenticated principal performing an operation
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// ReceiverType distinguishes hand-offs to registered businesses from
// hand-offs to anonymous consumers.
type ReceiverType string

const (
	ReceiverTypeBusiness ReceiverType = "business"
	ReceiverTypeConsumer ReceiverType = "consumer"
)

// IsValidReceiverType checks if a receiver type is known
func IsValidReceiverType(rt ReceiverType) bool {
	return rt == ReceiverTypeBusiness || rt == ReceiverTypeConsumer
}

// HandoffEventType represents the type of a published hand-off event
type HandoffEventType string

const (
	HandoffEventBound     HandoffEventType = "bound"
	HandoffEventSent      HandoffEventType = "sent"
	HandoffEventExpressed HandoffEventType = "expressed"
	HandoffEventReceived  HandoffEventType = "received"
	HandoffEventIssued    HandoffEventType = "issued"
)

// HandoffEvent is the advisory event published after a committed transition.
// The record store stays authoritative; consumers use these for journaling
// and notification only.
type HandoffEvent struct {
	EventID    string           `json:"event_id"` // ULID
	EventType  HandoffEventType `json:"event_type"`
	CodeID     string           `json:"code_id"`
	OuterCode  string           `json:"outer_code"`
	OrderID    string           `json:"order_id,omitempty"`
	ActorID    string           `json:"actor_id"`
	State      State            `json:"state"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventTypeForOperation maps a committed operation to its event type
func EventTypeForOperation(op Operation) HandoffEventType {
	switch op {
	case OperationBind:
		return HandoffEventBound
	case OperationSend:
		return HandoffEventSent
	case OperationExpress:
		return HandoffEventExpressed
	case OperationReceive:
		return HandoffEventReceived
	}
	return ""
}
