package http

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

var notConnectedErrnos = []error{
	syscall.ENETUNREACH,
	syscall.ENETDOWN,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.EPIPE,
}

var unreachableErrnos = []error{
	syscall.ECONNREFUSED,
	syscall.EHOSTUNREACH,
}

// ClassifyError maps a transport error onto the fault taxonomy. Errors that
// are already Faults are returned unchanged.
func ClassifyError(err error) *mas.Fault {
	var fault *mas.Fault
	if errors.As(err, &fault) {
		return fault
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return mas.NewFault(mas.FaultError, err)
	case matchesAny(err, notConnectedErrnos):
		return mas.NewFault(mas.FaultNotConnected, err)
	case isDNSError(err), matchesAny(err, unreachableErrnos):
		return mas.NewFault(mas.FaultUnreachable, err)
	default:
		return mas.NewFault(mas.FaultError, err)
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError

	return errors.As(err, &dnsErr)
}
