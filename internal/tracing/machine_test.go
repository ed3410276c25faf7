package tracing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/store/schema"
	"github.com/veritrace/veritrace/internal/tracing"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func newCode(state domain.State) *schema.TracingCode {
	return &schema.TracingCode{
		ID:        "code-1",
		InnerCode: "01aaaa",
		OuterCode: "01bbbb",
		Factory:   "factory-1",
		Owner:     "factory-1",
		OrderID:   "order-1",
		No:        1,
		State:     state,
	}
}

func factoryActor() domain.Actor {
	return domain.Actor{ID: "factory-1", Role: domain.RoleFactory}
}

func TestCanPerform_FinalizedRejectsEverything(t *testing.T) {
	m := tracing.NewMachine()

	for _, op := range []domain.Operation{
		domain.OperationBind,
		domain.OperationSend,
		domain.OperationExpress,
		domain.OperationReceive,
	} {
		code := newCode(domain.StateReceived)
		code.IsEnd = true

		err := m.CanPerform(factoryActor(), op, code)
		assert.ErrorIs(t, err, domain.ErrFinalized, "operation %s", op)
	}
}

func TestCanPerform_Denials(t *testing.T) {
	m := tracing.NewMachine()

	sent := newCode(domain.StateSend)
	sent.SetActiveLeg(schema.Leg{
		Sender:       "factory-1",
		ReceiverType: domain.ReceiverTypeBusiness,
		Receiver:     "shop-1",
		SendAt:       testNow,
	})

	tests := []struct {
		name    string
		actor   domain.Actor
		op      domain.Operation
		code    *schema.TracingCode
		wantErr *domain.CodedError
	}{
		{
			name:    "bind from BIND is wrong state",
			actor:   factoryActor(),
			op:      domain.OperationBind,
			code:    newCode(domain.StateBind),
			wantErr: domain.ErrWrongState,
		},
		{
			name:    "bind by another factory",
			actor:   domain.Actor{ID: "factory-2", Role: domain.RoleFactory},
			op:      domain.OperationBind,
			code:    newCode(domain.StateUnbind),
			wantErr: domain.ErrNotPermitted,
		},
		{
			name:    "bind by courier role",
			actor:   domain.Actor{ID: "factory-1", Role: domain.RoleCourier},
			op:      domain.OperationBind,
			code:    newCode(domain.StateUnbind),
			wantErr: domain.ErrNotPermitted,
		},
		{
			name:    "send from UNBIND is wrong state",
			actor:   factoryActor(),
			op:      domain.OperationSend,
			code:    newCode(domain.StateUnbind),
			wantErr: domain.ErrWrongState,
		},
		{
			name:    "send by non-owner",
			actor:   domain.Actor{ID: "someone-else", Role: domain.RoleBusiness},
			op:      domain.OperationSend,
			code:    newCode(domain.StateBind),
			wantErr: domain.ErrNotPermitted,
		},
		{
			name:    "express from BIND is wrong state",
			actor:   domain.Actor{ID: "courier-1", Role: domain.RoleCourier},
			op:      domain.OperationExpress,
			code:    newCode(domain.StateBind),
			wantErr: domain.ErrWrongState,
		},
		{
			name:    "express by non-courier",
			actor:   domain.Actor{ID: "shop-1", Role: domain.RoleBusiness},
			op:      domain.OperationExpress,
			code:    sent,
			wantErr: domain.ErrNotPermitted,
		},
		{
			name:    "receive from RECEIVED is wrong state",
			actor:   domain.Actor{ID: "shop-1", Role: domain.RoleBusiness},
			op:      domain.OperationReceive,
			code:    newCode(domain.StateReceived),
			wantErr: domain.ErrWrongState,
		},
		{
			name:    "receive of business leg by wrong actor",
			actor:   domain.Actor{ID: "shop-2", Role: domain.RoleBusiness},
			op:      domain.OperationReceive,
			code:    sent,
			wantErr: domain.ErrNotPermitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.CanPerform(tt.actor, tt.op, tt.code)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply_BindProducts(t *testing.T) {
	m := tracing.NewMachine()
	code := newCode(domain.StateUnbind)

	outcome, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationBind,
		Actor:     factoryActor(),
		Binding:   &tracing.Binding{Kind: tracing.BindingProducts, IDs: []string{"prod-1", "prod-2"}},
	}, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateBind, code.State)
	assert.False(t, code.IsFactoryTracing)
	assert.Equal(t, []string{"prod-1", "prod-2"}, []string(code.Products))
	assert.Empty(t, code.TracingProducts)
	assert.Empty(t, outcome.CascadeChildIDs)
}

func TestApply_BindTwiceRejected(t *testing.T) {
	m := tracing.NewMachine()
	code := newCode(domain.StateUnbind)

	req := tracing.Request{
		Operation: domain.OperationBind,
		Actor:     factoryActor(),
		Binding:   &tracing.Binding{Kind: tracing.BindingProducts, IDs: []string{"prod-1"}},
	}

	_, err := m.Apply(code, req, nil, testNow)
	require.NoError(t, err)

	// A second identical bind is not idempotent; the state moved on.
	_, err = m.Apply(code, req, nil, testNow)
	assert.ErrorIs(t, err, domain.ErrWrongState)
}

func TestApply_BindBundle(t *testing.T) {
	m := tracing.NewMachine()

	children := []schema.TracingCode{
		{ID: "child-1", State: domain.StateUnbind},
		{ID: "child-2", State: domain.StateBind},
	}

	code := newCode(domain.StateUnbind)
	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationBind,
		Actor:     factoryActor(),
		Binding:   &tracing.Binding{Kind: tracing.BindingBundle, IDs: []string{"child-1", "child-2"}},
	}, children, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateBind, code.State)
	assert.True(t, code.IsFactoryTracing)
	assert.Equal(t, []string{"child-1", "child-2"}, []string(code.TracingProducts))
	assert.Empty(t, code.Products)
}

func TestApply_BindBundle_ChildInvalid(t *testing.T) {
	m := tracing.NewMachine()

	tests := []struct {
		name     string
		ids      []string
		children []schema.TracingCode
	}{
		{
			name:     "missing child",
			ids:      []string{"child-1", "child-2"},
			children: []schema.TracingCode{{ID: "child-1", State: domain.StateUnbind}},
		},
		{
			name: "child already sent",
			ids:  []string{"child-1"},
			children: []schema.TracingCode{
				{ID: "child-1", State: domain.StateSend},
			},
		},
		{
			name: "child finalized",
			ids:  []string{"child-1"},
			children: []schema.TracingCode{
				{ID: "child-1", State: domain.StateBind, IsEnd: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := newCode(domain.StateUnbind)
			_, err := m.Apply(code, tracing.Request{
				Operation: domain.OperationBind,
				Actor:     factoryActor(),
				Binding:   &tracing.Binding{Kind: tracing.BindingBundle, IDs: tt.ids},
			}, tt.children, testNow)
			assert.ErrorIs(t, err, domain.ErrChildInvalid)
		})
	}
}

func TestApply_BindValidation(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateUnbind)
	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationBind,
		Actor:     factoryActor(),
	}, nil, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = m.Apply(code, tracing.Request{
		Operation: domain.OperationBind,
		Actor:     factoryActor(),
		Binding:   &tracing.Binding{Kind: tracing.BindingProducts},
	}, nil, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApply_SendToBusiness(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateBind)
	code.Products = []string{"prod-1"}

	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationSend,
		Actor:     factoryActor(),
		Leg: &tracing.LegInput{
			ReceiverType: domain.ReceiverTypeBusiness,
			Receiver:     "shop-1",
		},
	}, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateSend, code.State)
	assert.False(t, code.IsEnd)

	leg := code.ActiveLegValue()
	require.NotNil(t, leg)
	assert.Equal(t, "factory-1", leg.Sender)
	assert.Equal(t, "shop-1", leg.Receiver)
	assert.Equal(t, domain.ReceiverTypeBusiness, leg.ReceiverType)
	assert.Equal(t, testNow, leg.SendAt)
	assert.Empty(t, leg.ReceiverName)
	assert.Empty(t, code.History)
}

func TestApply_SendToConsumer(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateBind)
	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationSend,
		Actor:     factoryActor(),
		Leg: &tracing.LegInput{
			ReceiverType:    domain.ReceiverTypeConsumer,
			ReceiverName:    "Alex Chen",
			ReceiverPhone:   "13800000000",
			ReceiverAddress: "1 Example Road",
		},
	}, nil, testNow)
	require.NoError(t, err)

	leg := code.ActiveLegValue()
	require.NotNil(t, leg)
	assert.Empty(t, leg.Receiver, "consumer legs carry no receiver id")
	assert.Equal(t, "Alex Chen", leg.ReceiverName)
}

func TestApply_SendValidation(t *testing.T) {
	m := tracing.NewMachine()

	tests := []struct {
		name string
		leg  *tracing.LegInput
	}{
		{name: "missing record", leg: nil},
		{name: "unknown receiver type", leg: &tracing.LegInput{ReceiverType: "robot"}},
		{name: "business without receiver", leg: &tracing.LegInput{ReceiverType: domain.ReceiverTypeBusiness}},
		{
			name: "consumer without address",
			leg: &tracing.LegInput{
				ReceiverType:  domain.ReceiverTypeConsumer,
				ReceiverName:  "Alex",
				ReceiverPhone: "123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := newCode(domain.StateBind)
			_, err := m.Apply(code, tracing.Request{
				Operation: domain.OperationSend,
				Actor:     factoryActor(),
				Leg:       tt.leg,
			}, nil, testNow)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApply_ResendPreservesHistory(t *testing.T) {
	m := tracing.NewMachine()

	received := testNow.Add(-time.Hour)
	code := newCode(domain.StateReceived)
	code.Owner = "shop-1"
	code.SetActiveLeg(schema.Leg{
		Sender:       "factory-1",
		ReceiverType: domain.ReceiverTypeBusiness,
		Receiver:     "shop-1",
		SendAt:       testNow.Add(-2 * time.Hour),
		ReceivedAt:   &received,
	})

	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationSend,
		Actor:     domain.Actor{ID: "shop-1", Role: domain.RoleBusiness},
		Leg: &tracing.LegInput{
			ReceiverType: domain.ReceiverTypeBusiness,
			Receiver:     "shop-2",
		},
	}, nil, testNow)
	require.NoError(t, err)

	require.Len(t, code.History, 1)
	assert.Equal(t, "factory-1", code.History[0].Sender)
	assert.Equal(t, "shop-1", code.History[0].Receiver)

	leg := code.ActiveLegValue()
	require.NotNil(t, leg)
	assert.Equal(t, "shop-1", leg.Sender)
	assert.Equal(t, "shop-2", leg.Receiver)
	assert.Nil(t, leg.ReceivedAt)
}

func TestApply_SendBundleExhaustion(t *testing.T) {
	m := tracing.NewMachine()

	leg := &tracing.LegInput{ReceiverType: domain.ReceiverTypeBusiness, Receiver: "shop-1"}

	t.Run("children still bindable keeps bundle open", func(t *testing.T) {
		code := newCode(domain.StateBind)
		code.IsFactoryTracing = true
		code.TracingProducts = []string{"child-1", "child-2"}

		children := []schema.TracingCode{
			{ID: "child-1", State: domain.StateBind},
			{ID: "child-2", State: domain.StateReceived},
		}

		_, err := m.Apply(code, tracing.Request{
			Operation: domain.OperationSend,
			Actor:     factoryActor(),
			Leg:       leg,
		}, children, testNow)
		require.NoError(t, err)
		assert.False(t, code.IsEnd)
	})

	t.Run("all children consumed finalizes bundle", func(t *testing.T) {
		code := newCode(domain.StateBind)
		code.IsFactoryTracing = true
		code.TracingProducts = []string{"child-1", "child-2"}

		children := []schema.TracingCode{
			{ID: "child-1", State: domain.StateReceived},
			{ID: "child-2", State: domain.StateSend},
		}

		_, err := m.Apply(code, tracing.Request{
			Operation: domain.OperationSend,
			Actor:     factoryActor(),
			Leg:       leg,
		}, children, testNow)
		require.NoError(t, err)
		assert.True(t, code.IsEnd)
	})
}

func TestApply_Express(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateSend)
	code.SetActiveLeg(schema.Leg{
		Sender:       "factory-1",
		ReceiverType: domain.ReceiverTypeBusiness,
		Receiver:     "shop-1",
		SendAt:       testNow.Add(-time.Hour),
	})

	courier := domain.Actor{ID: "courier-1", Role: domain.RoleCourier}

	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationExpress,
		Actor:     courier,
		Express:   &tracing.ExpressInput{ExpressNo: "SF123456", ExpressName: "SF Express"},
	}, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateExpressed, code.State)
	assert.Empty(t, code.History, "express mutates the active leg in place")

	leg := code.ActiveLegValue()
	require.NotNil(t, leg)
	assert.Equal(t, "courier-1", leg.Courier)
	assert.Equal(t, "SF123456", leg.ExpressNo)
	assert.Equal(t, "SF Express", leg.ExpressName)
	require.NotNil(t, leg.ExpressAt)
	assert.Equal(t, testNow, *leg.ExpressAt)
}

func TestApply_ExpressValidation(t *testing.T) {
	m := tracing.NewMachine()
	courier := domain.Actor{ID: "courier-1", Role: domain.RoleCourier}

	for _, express := range []*tracing.ExpressInput{
		nil,
		{ExpressNo: "SF123456"},
		{ExpressName: "SF Express"},
	} {
		code := newCode(domain.StateSend)
		code.SetActiveLeg(schema.Leg{Sender: "factory-1", ReceiverType: domain.ReceiverTypeBusiness, Receiver: "shop-1", SendAt: testNow})

		_, err := m.Apply(code, tracing.Request{
			Operation: domain.OperationExpress,
			Actor:     courier,
			Express:   express,
		}, nil, testNow)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestApply_ReceiveBusinessLeg(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateExpressed)
	expressAt := testNow.Add(-time.Hour)
	code.SetActiveLeg(schema.Leg{
		Sender:       "factory-1",
		ReceiverType: domain.ReceiverTypeBusiness,
		Receiver:     "shop-1",
		Courier:      "courier-1",
		ExpressNo:    "SF123456",
		ExpressName:  "SF Express",
		ExpressAt:    &expressAt,
		SendAt:       testNow.Add(-2 * time.Hour),
	})

	outcome, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationReceive,
		Actor:     domain.Actor{ID: "shop-1", Role: domain.RoleBusiness},
	}, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateReceived, code.State)
	assert.Equal(t, "shop-1", code.Owner, "receive transfers custody")
	assert.False(t, code.IsEnd, "business receipt is not terminal")
	assert.Empty(t, outcome.CascadeChildIDs)

	leg := code.ActiveLegValue()
	require.NotNil(t, leg)
	require.NotNil(t, leg.ReceivedAt)
	assert.Equal(t, testNow, *leg.ReceivedAt)
}

func TestApply_ReceiveConsumerLegFinalizes(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateSend)
	code.SetActiveLeg(schema.Leg{
		Sender:          "shop-1",
		ReceiverType:    domain.ReceiverTypeConsumer,
		ReceiverName:    "Alex Chen",
		ReceiverPhone:   "13800000000",
		ReceiverAddress: "1 Example Road",
		SendAt:          testNow.Add(-time.Hour),
	})
	code.Owner = "shop-1"

	// Anyone may confirm a consumer leg.
	outcome, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationReceive,
		Actor:     domain.Actor{ID: "consumer-app", Role: domain.RoleBusiness},
	}, nil, testNow)
	require.NoError(t, err)

	assert.True(t, code.IsEnd)
	assert.Equal(t, domain.StateReceived, code.State)
	assert.Equal(t, "consumer-app", code.Owner)
	assert.Empty(t, outcome.CascadeChildIDs)

	// Frozen: any further operation is rejected.
	_, err = m.Apply(code, tracing.Request{
		Operation: domain.OperationSend,
		Actor:     domain.Actor{ID: "consumer-app", Role: domain.RoleBusiness},
		Leg:       &tracing.LegInput{ReceiverType: domain.ReceiverTypeBusiness, Receiver: "shop-2"},
	}, nil, testNow)
	assert.ErrorIs(t, err, domain.ErrFinalized)
}

func TestApply_ReceiveBundleCascades(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateSend)
	code.IsFactoryTracing = true
	code.TracingProducts = []string{"child-1", "child-2"}
	code.SetActiveLeg(schema.Leg{
		Sender:       "factory-1",
		ReceiverType: domain.ReceiverTypeBusiness,
		Receiver:     "shop-1",
		SendAt:       testNow.Add(-time.Hour),
	})

	outcome, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationReceive,
		Actor:     domain.Actor{ID: "shop-1", Role: domain.RoleBusiness},
	}, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"child-1", "child-2"}, outcome.CascadeChildIDs)
	assert.Equal(t, "shop-1", code.Owner)
}

func TestApply_DeniedOperationsLeaveCodeUntouched(t *testing.T) {
	m := tracing.NewMachine()

	code := newCode(domain.StateBind)
	code.Products = []string{"prod-1"}
	before := *code

	_, err := m.Apply(code, tracing.Request{
		Operation: domain.OperationExpress,
		Actor:     domain.Actor{ID: "courier-1", Role: domain.RoleCourier},
		Express:   &tracing.ExpressInput{ExpressNo: "SF1", ExpressName: "SF"},
	}, nil, testNow)
	require.Error(t, err)

	var coded *domain.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, before.State, code.State)
	assert.Equal(t, before.Owner, code.Owner)
}
