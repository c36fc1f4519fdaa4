package client

import (
	"context"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// UsersClient implements mas.UsersClient.
type UsersClient struct {
	sender mas.Sender
}

// NewUsersClient creates a new users client.
func NewUsersClient(sender mas.Sender) *UsersClient {
	return &UsersClient{sender: sender}
}

// List implements mas.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, usernames ...mas.Username) ([]mas.User, error) {
	return mas.List[mas.User](ctx, c.sender, mas.Get(mas.Users, usernames))
}
