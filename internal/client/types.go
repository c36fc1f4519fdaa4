package client

import (
	"context"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// TypesClient implements mas.TypesClient.
type TypesClient struct {
	sender mas.Sender
}

// NewTypesClient creates a new data types client.
func NewTypesClient(sender mas.Sender) *TypesClient {
	return &TypesClient{sender: sender}
}

// List implements mas.TypesClient.List.
func (c *TypesClient) List(ctx context.Context) ([]mas.DataType, error) {
	return mas.List[mas.DataType](ctx, c.sender, mas.Get[mas.TypeName](mas.Types, nil))
}
