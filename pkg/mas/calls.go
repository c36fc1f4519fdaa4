package mas

import (
	"context"
	"fmt"
)

// First sends req and returns the first record of the response. An empty
// but otherwise successful response is a FaultNotFound.
func First[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID]) (T, error) {
	var zero T

	env, err := fetch[T](ctx, s, req)
	if err != nil {
		return zero, err
	}

	if len(env.Contents) == 0 {
		return zero, NewFault(FaultNotFound, fmt.Errorf("%s: %w", req.Path(), ErrNoContents))
	}

	return env.Contents[0], nil
}

// Post sends a POST request and returns the first record of the response.
func Post[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID]) (T, error) {
	return firstWithMethod[T](ctx, s, req, MethodPost)
}

// Patch sends a PATCH request and returns the first record of the response.
func Patch[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID]) (T, error) {
	return firstWithMethod[T](ctx, s, req, MethodPatch)
}

// Put sends a PUT request and returns the first record of the response.
func Put[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID]) (T, error) {
	return firstWithMethod[T](ctx, s, req, MethodPut)
}

func firstWithMethod[T any, ID Identifier](ctx context.Context, s Sender, req *Request[ID], method Method) (T, error) {
	if req.Method() != method {
		var zero T

		return zero, NewFault(FaultError, fmt.Errorf("%w: want %s, got %s", ErrMethodMismatch, method, req.Method()))
	}

	return First[T](ctx, s, req)
}

// Delete issues a DELETE for identifiers of resource and discards the body.
func Delete[ID Identifier](ctx context.Context, s Sender, resource Resource[ID], identifiers ...ID) error {
	if len(identifiers) == 0 {
		return NewFault(FaultError, ErrNoIdentifiers)
	}

	req, err := NewRequest(MethodDelete, resource, identifiers)
	if err != nil {
		return NewFault(FaultError, err)
	}

	return Exec(ctx, s, req)
}

// Exec sends req and discards the response body.
func Exec[ID Identifier](ctx context.Context, s Sender, req *Request[ID]) error {
	if _, err := s.Send(ctx, req.Call(0)); err != nil {
		return AsFault(err)
	}

	return nil
}
