package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// InvocationsClient implements mas.InvocationsClient.
type InvocationsClient struct {
	sender mas.Sender
	now    func() time.Time
}

// NewInvocationsClient creates a new invocations client.
func NewInvocationsClient(sender mas.Sender) *InvocationsClient {
	return &InvocationsClient{sender: sender, now: time.Now}
}

// List implements mas.InvocationsClient.List. The date is sent as a UTC
// calendar day.
func (c *InvocationsClient) List(ctx context.Context, dateInvoked time.Time, period int, ids ...uuid.UUID) ([]mas.Invocation, error) {
	req := mas.Get(mas.Invocations, ids,
		mas.WithQuery("date_invoke", dateInvoked.UTC().Format(constants.InvokeDateLayout)),
		mas.WithQuery("period", period),
	)

	return mas.List[mas.Invocation](ctx, c.sender, req)
}

// ListRecent implements mas.InvocationsClient.ListRecent.
func (c *InvocationsClient) ListRecent(ctx context.Context, period int, ids ...uuid.UUID) ([]mas.Invocation, error) {
	since := c.now().Add(-time.Duration(period) * constants.HoursPerDay * time.Hour)

	return c.List(ctx, since, period, ids...)
}

// Get implements mas.InvocationsClient.Get.
func (c *InvocationsClient) Get(ctx context.Context, id uuid.UUID) (*mas.Invocation, error) {
	invocation, err := mas.First[mas.Invocation](ctx, c.sender, mas.Get(mas.Invocations, []uuid.UUID{id}))
	if err != nil {
		return nil, err
	}

	return &invocation, nil
}

// Outputs implements mas.InvocationsClient.Outputs.
func (c *InvocationsClient) Outputs(ctx context.Context, id uuid.UUID) ([]mas.InvocationOutput, error) {
	req := mas.Get(mas.Invocations, []uuid.UUID{id}, mas.WithAction(constants.OutputsAction))

	return mas.List[mas.InvocationOutput](ctx, c.sender, req)
}

// Schedule implements mas.InvocationsClient.Schedule.
func (c *InvocationsClient) Schedule(ctx context.Context, body *mas.ScheduledInvocation) (*mas.Invocation, error) {
	payload := *body
	if payload.Parameters == nil {
		payload.Parameters = map[string]interface{}{}
	}

	req, err := mas.NewBodyRequest[uuid.UUID](mas.MethodPost, mas.Invocations, nil, payload)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	invocation, err := mas.Post[mas.Invocation](ctx, c.sender, req)
	if err != nil {
		return nil, err
	}

	return &invocation, nil
}
