package connectivity

import "fmt"

// ConnectivityError reports that a contingency or parade islands the
// network in a way the caller's configuration does not accept (§7). The
// connectivity package itself never decides whether this is fatal or
// merely invalidates one contingency — that policy lives in the network
// package, which is the one holding the "accept connectivity-breaking
// contingencies" flag.
type ConnectivityError struct {
	Detail string
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity: %s", e.Detail)
}

// NewError builds a ConnectivityError with a formatted detail message.
func NewError(format string, args ...interface{}) *ConnectivityError {
	return &ConnectivityError{Detail: fmt.Sprintf(format, args...)}
}
