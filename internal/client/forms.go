package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// FormsClient implements mas.FormsClient.
type FormsClient struct {
	sender mas.Sender
}

// NewFormsClient creates a new forms client.
func NewFormsClient(sender mas.Sender) *FormsClient {
	return &FormsClient{sender: sender}
}

// List implements mas.FormsClient.List. No identifiers lists every form.
func (c *FormsClient) List(ctx context.Context, ids ...uuid.UUID) ([]mas.ListedForm, error) {
	return mas.List[mas.ListedForm](ctx, c.sender, mas.Get(mas.Forms, ids))
}

// Get implements mas.FormsClient.Get.
func (c *FormsClient) Get(ctx context.Context, id uuid.UUID) (*mas.Form, error) {
	form, err := mas.First[mas.Form](ctx, c.sender, mas.Get(mas.Forms, []uuid.UUID{id}))
	if err != nil {
		return nil, err
	}

	return &form, nil
}

// Create implements mas.FormsClient.Create.
func (c *FormsClient) Create(ctx context.Context, body *mas.PostForm) (*mas.ListedForm, error) {
	payload := *body
	if payload.Values == nil {
		payload.Values = []interface{}{}
	}

	req, err := mas.NewBodyRequest(mas.MethodPost, mas.Forms, nil, payload)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	form, err := mas.Post[mas.ListedForm](ctx, c.sender, req)
	if err != nil {
		return nil, err
	}

	return &form, nil
}

// Update implements mas.FormsClient.Update.
func (c *FormsClient) Update(ctx context.Context, body *mas.PatchForm) (*mas.Form, error) {
	payload := *body
	if payload.Values == nil {
		payload.Values = []interface{}{}
	}

	req, err := mas.NewBodyRequest(mas.MethodPatch, mas.Forms, nil, payload)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	form, err := mas.Patch[mas.Form](ctx, c.sender, req)
	if err != nil {
		return nil, err
	}

	return &form, nil
}

// Delete implements mas.FormsClient.Delete.
func (c *FormsClient) Delete(ctx context.Context, ids ...uuid.UUID) error {
	return mas.Delete(ctx, c.sender, mas.Forms, ids...)
}
