package client

import (
	"context"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// ProcessesClient implements mas.ProcessesClient.
type ProcessesClient struct {
	sender mas.Sender
}

// NewProcessesClient creates a new processes client.
func NewProcessesClient(sender mas.Sender) *ProcessesClient {
	return &ProcessesClient{sender: sender}
}

// List implements mas.ProcessesClient.List.
func (c *ProcessesClient) List(ctx context.Context, names ...mas.FullyQualifiedName) ([]mas.ListedProcess, error) {
	return mas.List[mas.ListedProcess](ctx, c.sender, mas.Get(mas.Processes, names))
}

// Get implements mas.ProcessesClient.Get.
func (c *ProcessesClient) Get(ctx context.Context, name mas.FullyQualifiedName) (*mas.Process, error) {
	process, err := mas.First[mas.Process](ctx, c.sender, mas.Get(mas.Processes, []mas.FullyQualifiedName{name}))
	if err != nil {
		return nil, err
	}

	return &process, nil
}
