package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// PrototypesClient implements mas.PrototypesClient.
type PrototypesClient struct {
	sender mas.Sender
}

// NewPrototypesClient creates a new prototypes client.
func NewPrototypesClient(sender mas.Sender) *PrototypesClient {
	return &PrototypesClient{sender: sender}
}

// List implements mas.PrototypesClient.List.
func (c *PrototypesClient) List(ctx context.Context, version *int, ids ...uuid.UUID) ([]mas.ListedPrototype, error) {
	var opts []mas.RequestOption
	if version != nil {
		opts = append(opts, mas.WithQuery("version", *version))
	}

	return mas.List[mas.ListedPrototype](ctx, c.sender, mas.Get(mas.Prototypes, ids, opts...))
}
