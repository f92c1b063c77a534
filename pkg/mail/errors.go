package mail

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuth returned when the server rejects the credentials, connecting is not retried
var ErrAuth = errors.New("imap authentication failed")

// ErrNotConnected returned by mailbox operations before a successful Connect
var ErrNotConnected = errors.New("imap client is not connected")

// ConnectionError reports a connection failure after the retry budget is spent.
// The password is masked in the message.
type ConnectionError struct {
	User     string
	Password string
	Host     string
	Port     int
	TLS      bool
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection refused to %s:%s@%s:%d TLS=%t after %d attempt(s): %v",
		e.User, strings.Repeat("*", len(e.Password)), e.Host, e.Port, e.TLS, e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// BoxError reports a failure to open the mailbox
type BoxError struct {
	Box string
	Err error
}

func (e *BoxError) Error() string {
	return fmt.Sprintf("failed to open box %q: %v", e.Box, e.Err)
}

func (e *BoxError) Unwrap() error { return e.Err }

// ParseError reports a message that can't be turned into a Mail
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "failed to parse mail: " + e.Reason
	}
	return fmt.Sprintf("failed to parse mail: %s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
