package client

import (
	"context"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// NamespacesClient implements mas.NamespacesClient.
type NamespacesClient struct {
	sender mas.Sender
}

// NewNamespacesClient creates a new namespaces client.
func NewNamespacesClient(sender mas.Sender) *NamespacesClient {
	return &NamespacesClient{sender: sender}
}

// List implements mas.NamespacesClient.List.
func (c *NamespacesClient) List(ctx context.Context, names ...mas.FullyQualifiedName) ([]mas.Namespace, error) {
	return mas.List[mas.Namespace](ctx, c.sender, mas.Get(mas.Namespaces, names))
}

// Create implements mas.NamespacesClient.Create.
func (c *NamespacesClient) Create(ctx context.Context, body *mas.NamespaceBody) (*mas.Namespace, error) {
	return c.write(ctx, mas.MethodPost, body)
}

// Replace implements mas.NamespacesClient.Replace.
func (c *NamespacesClient) Replace(ctx context.Context, body *mas.NamespaceBody) (*mas.Namespace, error) {
	return c.write(ctx, mas.MethodPut, body)
}

func (c *NamespacesClient) write(ctx context.Context, method mas.Method, body *mas.NamespaceBody) (*mas.Namespace, error) {
	req, err := mas.NewBodyRequest[mas.FullyQualifiedName](method, mas.Namespaces, nil, body)
	if err != nil {
		return nil, mas.NewFault(mas.FaultError, err)
	}

	var namespace mas.Namespace

	if method == mas.MethodPut {
		namespace, err = mas.Put[mas.Namespace](ctx, c.sender, req)
	} else {
		namespace, err = mas.Post[mas.Namespace](ctx, c.sender, req)
	}

	if err != nil {
		return nil, err
	}

	return &namespace, nil
}
