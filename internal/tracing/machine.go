// Package tracing implements the lifecycle state machine for tracing codes:
// UNBIND → BIND → SEND → EXPRESSED → RECEIVED, with SEND reachable again
// from RECEIVED (re-shipment) and RECEIVE from either SEND or EXPRESSED
// (the express step is optional).
package tracing

import (
	"time"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/store/schema"
)

// BindingKind tags what a code was bound to. Chosen once at bind, never
// re-inferred from field presence.
type BindingKind string

const (
	// BindingProducts binds a standalone code to barcoded goods
	BindingProducts BindingKind = "products"
	// BindingBundle binds a bundle code to child tracing codes
	BindingBundle BindingKind = "bundle"
)

// Binding is the bind operation's payload
type Binding struct {
	Kind BindingKind
	IDs  []string
}

// LegInput is the send operation's payload
type LegInput struct {
	ReceiverType    domain.ReceiverType
	Receiver        string
	ReceiverName    string
	ReceiverPhone   string
	ReceiverAddress string
}

// ExpressInput is the express operation's payload
type ExpressInput struct {
	ExpressNo   string
	ExpressName string
}

// Request is one requested transition
type Request struct {
	Operation domain.Operation
	Actor     domain.Actor
	Binding   *Binding
	Leg       *LegInput
	Express   *ExpressInput
}

// Outcome reports side effects the caller must persist beyond the code row
type Outcome struct {
	// CascadeChildIDs lists bundle children whose owner must be reassigned
	// to the receiving actor in the same commit (receive on a bundle).
	CascadeChildIDs []string
}

// Machine validates preconditions and computes transitions. It is pure:
// collaborator existence checks (receivers, barcode products) happen before
// Apply; persistence happens after.
type Machine struct{}

// NewMachine creates a tracing state machine
func NewMachine() *Machine {
	return &Machine{}
}

// CanPerform checks whether the actor may run the operation against the
// code's current state. It covers the finalized guard, state preconditions
// and role/ownership rules; operation payloads are validated by Apply.
// Returns nil when permitted, a coded error naming the denial otherwise.
func (m *Machine) CanPerform(actor domain.Actor, op domain.Operation, code *schema.TracingCode) error {
	// Finalized codes reject every operation before any other check.
	if code.IsEnd {
		return domain.ErrFinalized
	}

	if !domain.IsValidOperation(op) {
		return domain.ErrValidation.WithDetail("unknown operation %q", op)
	}

	switch op {
	case domain.OperationBind:
		if code.State != domain.StateUnbind {
			return domain.ErrWrongState.WithDetail("bind requires UNBIND, code is %s", code.State)
		}
		if actor.Role != domain.RoleFactory || actor.ID != code.Factory {
			return domain.ErrNotPermitted.WithDetail("bind is reserved to the issuing factory")
		}

	case domain.OperationSend:
		if code.State != domain.StateBind && code.State != domain.StateReceived {
			return domain.ErrWrongState.WithDetail("send requires BIND or RECEIVED, code is %s", code.State)
		}
		if actor.ID != code.Owner {
			return domain.ErrNotPermitted.WithDetail("send is reserved to the current owner")
		}

	case domain.OperationExpress:
		if code.State != domain.StateSend {
			return domain.ErrWrongState.WithDetail("express requires SEND, code is %s", code.State)
		}
		if actor.Role != domain.RoleCourier {
			return domain.ErrNotPermitted.WithDetail("express is reserved to couriers")
		}

	case domain.OperationReceive:
		if code.State != domain.StateSend && code.State != domain.StateExpressed {
			return domain.ErrWrongState.WithDetail("receive requires SEND or EXPRESSED, code is %s", code.State)
		}
		leg := code.ActiveLegValue()
		if leg == nil {
			return domain.ErrWrongState.WithDetail("no hand-off in flight")
		}
		if leg.ReceiverType == domain.ReceiverTypeBusiness && actor.ID != leg.Receiver {
			return domain.ErrNotPermitted.WithDetail("receive is reserved to the designated receiver")
		}
	}

	return nil
}

// Apply validates the operation payload and mutates the given code copy per
// the transition table. children are the preloaded bundle children (bind
// validation and the bundle-consumed rule); now stamps the leg timestamps.
// The caller persists the mutation with a revision guard afterwards.
func (m *Machine) Apply(code *schema.TracingCode, req Request, children []schema.TracingCode, now time.Time) (*Outcome, error) {
	if err := m.CanPerform(req.Actor, req.Operation, code); err != nil {
		return nil, err
	}

	switch req.Operation {
	case domain.OperationBind:
		return m.applyBind(code, req, children)
	case domain.OperationSend:
		return m.applySend(code, req, children, now)
	case domain.OperationExpress:
		return m.applyExpress(code, req, now)
	case domain.OperationReceive:
		return m.applyReceive(code, req, now)
	}

	return nil, domain.ErrValidation.WithDetail("unknown operation %q", req.Operation)
}

func (m *Machine) applyBind(code *schema.TracingCode, req Request, children []schema.TracingCode) (*Outcome, error) {
	binding := req.Binding
	if binding == nil || len(binding.IDs) == 0 {
		return nil, domain.ErrValidation.WithDetail("bind requires a non-empty binding")
	}

	switch binding.Kind {
	case BindingBundle:
		// Every referenced child must exist and still be bindable.
		if len(children) != len(binding.IDs) {
			return nil, domain.ErrChildInvalid.WithDetail("%d of %d children found", len(children), len(binding.IDs))
		}
		for _, child := range children {
			if child.IsEnd || (child.State != domain.StateUnbind && child.State != domain.StateBind) {
				return nil, domain.ErrChildInvalid.WithDetail("child %s in state %s", child.ID, child.State)
			}
		}
		code.TracingProducts = binding.IDs
		code.IsFactoryTracing = true

	case BindingProducts:
		code.Products = binding.IDs
		code.IsFactoryTracing = false

	default:
		return nil, domain.ErrValidation.WithDetail("unknown binding kind %q", binding.Kind)
	}

	code.State = domain.StateBind
	return &Outcome{}, nil
}

func (m *Machine) applySend(code *schema.TracingCode, req Request, children []schema.TracingCode, now time.Time) (*Outcome, error) {
	leg := req.Leg
	if leg == nil {
		return nil, domain.ErrValidation.WithDetail("send requires a record")
	}
	if !domain.IsValidReceiverType(leg.ReceiverType) {
		return nil, domain.ErrValidation.WithDetail("unknown receiver type %q", leg.ReceiverType)
	}

	switch leg.ReceiverType {
	case domain.ReceiverTypeBusiness:
		if leg.Receiver == "" {
			return nil, domain.ErrValidation.WithDetail("business hand-off requires a receiver")
		}
	case domain.ReceiverTypeConsumer:
		if leg.ReceiverName == "" || leg.ReceiverPhone == "" || leg.ReceiverAddress == "" {
			return nil, domain.ErrValidation.WithDetail("consumer hand-off requires name, phone and address")
		}
	}

	// Preserve the finished leg before starting a new one.
	if active := code.ActiveLegValue(); active != nil {
		code.History = append(code.History, *active)
	}

	next := schema.Leg{
		Sender:       req.Actor.ID,
		ReceiverType: leg.ReceiverType,
		SendAt:       now,
	}
	if leg.ReceiverType == domain.ReceiverTypeBusiness {
		next.Receiver = leg.Receiver
	} else {
		next.ReceiverName = leg.ReceiverName
		next.ReceiverPhone = leg.ReceiverPhone
		next.ReceiverAddress = leg.ReceiverAddress
	}
	code.SetActiveLeg(next)

	// A bundle is exhausted once none of its children remain bindable.
	if code.IsFactoryTracing && bundleConsumed(children) {
		code.IsEnd = true
	}

	code.State = domain.StateSend
	return &Outcome{}, nil
}

func (m *Machine) applyExpress(code *schema.TracingCode, req Request, now time.Time) (*Outcome, error) {
	express := req.Express
	if express == nil || express.ExpressNo == "" || express.ExpressName == "" {
		return nil, domain.ErrValidation.WithDetail("express requires express_no and express_name")
	}

	leg := code.ActiveLegValue()
	if leg == nil {
		return nil, domain.ErrWrongState.WithDetail("no hand-off in flight")
	}

	// The courier annotates the in-flight leg; no new leg starts.
	leg.Courier = req.Actor.ID
	leg.ExpressNo = express.ExpressNo
	leg.ExpressName = express.ExpressName
	leg.ExpressAt = &now
	code.SetActiveLeg(*leg)

	code.State = domain.StateExpressed
	return &Outcome{}, nil
}

func (m *Machine) applyReceive(code *schema.TracingCode, req Request, now time.Time) (*Outcome, error) {
	leg := code.ActiveLegValue()
	if leg == nil {
		return nil, domain.ErrWrongState.WithDetail("no hand-off in flight")
	}

	leg.ReceivedAt = &now
	code.SetActiveLeg(*leg)

	if leg.ReceiverType == domain.ReceiverTypeConsumer {
		// Consumer receipt is terminal; the record freezes.
		code.IsEnd = true
	}

	code.State = domain.StateReceived
	code.Owner = req.Actor.ID

	outcome := &Outcome{}
	if code.IsFactoryTracing && len(code.TracingProducts) > 0 {
		outcome.CascadeChildIDs = code.TracingProducts
	}
	return outcome, nil
}

// bundleConsumed reports whether no child remains in a bindable state
// (UNBIND or BIND): the intended reading of the bundle-exhaustion rule.
func bundleConsumed(children []schema.TracingCode) bool {
	for _, child := range children {
		if child.State == domain.StateUnbind || child.State == domain.StateBind {
			return false
		}
	}
	return len(children) > 0
}
