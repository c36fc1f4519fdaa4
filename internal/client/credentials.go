package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// CredentialsClient implements mas.CredentialsClient.
type CredentialsClient struct {
	sender mas.Sender
}

// NewCredentialsClient creates a new credentials client.
func NewCredentialsClient(sender mas.Sender) *CredentialsClient {
	return &CredentialsClient{sender: sender}
}

// List implements mas.CredentialsClient.List.
func (c *CredentialsClient) List(ctx context.Context, ids ...uuid.UUID) ([]mas.Credential, error) {
	return mas.List[mas.Credential](ctx, c.sender, mas.Get(mas.Credentials, ids))
}

// Create implements mas.CredentialsClient.Create.
func (c *CredentialsClient) Create(ctx context.Context, body *mas.PostCredential) (*mas.Credential, error) {
	req, err := mas.NewBodyRequest[uuid.UUID](mas.MethodPost, mas.Credentials, nil, body)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	credential, err := mas.Post[mas.Credential](ctx, c.sender, req)
	if err != nil {
		return nil, err
	}

	return &credential, nil
}

// Update implements mas.CredentialsClient.Update.
func (c *CredentialsClient) Update(ctx context.Context, body *mas.PatchCredential) (*mas.Credential, error) {
	req, err := mas.NewBodyRequest(mas.MethodPatch, mas.Credentials, []uuid.UUID{body.UUID}, body)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	credential, err := mas.Patch[mas.Credential](ctx, c.sender, req)
	if err != nil {
		return nil, err
	}

	return &credential, nil
}

// Delete implements mas.CredentialsClient.Delete.
func (c *CredentialsClient) Delete(ctx context.Context, ids ...uuid.UUID) error {
	return mas.Delete(ctx, c.sender, mas.Credentials, ids...)
}
