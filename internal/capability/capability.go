// Package capability defines the OS capability provider interfaces and the
// closed error vocabulary every provider operation returns.
//
// Providers are constructed once at startup and held by the execution
// context; they are safe for use by any number of sequential invocations.
package capability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind classifies a capability failure. The vocabulary is intentionally
// narrower than the top-level result error codes; callers map it onward.
type Kind int

const (
	KindUnsupported Kind = iota
	KindDependencyMissing
	KindPermissionDenied
	KindIO
	KindNetwork
	KindTimeout
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindUnsupported:
		return "unsupported"
	case KindDependencyMissing:
		return "dependency missing"
	case KindPermissionDenied:
		return "permission denied"
	case KindIO:
		return "io error"
	case KindNetwork:
		return "network error"
	case KindTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// Error is the concrete error type returned by every capability operation.
// Providers never panic; every failure surfaces as an *Error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Unsupported reports an operation the backend cannot perform at all.
func Unsupported(msg string) *Error {
	return &Error{Kind: KindUnsupported, Msg: msg}
}

// DependencyMissing reports a required external tool that is not installed.
func DependencyMissing(msg string) *Error {
	return &Error{Kind: KindDependencyMissing, Msg: msg}
}

// PermissionDenied reports an operation refused by the OS.
func PermissionDenied(msg string, err error) *Error {
	return &Error{Kind: KindPermissionDenied, Msg: msg, Err: err}
}

// IOError wraps a generic I/O failure.
func IOError(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}

// NetworkErrorf reports a DNS or transport failure.
func NetworkErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindNetwork, Msg: fmt.Sprintf(format, args...)}
}

// TimeoutError reports an operation that exceeded its deadline.
func TimeoutError() *Error {
	return &Error{Kind: KindTimeout}
}

// Otherf reports a failure that fits no other kind.
func Otherf(format string, args ...any) *Error {
	return &Error{Kind: KindOther, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the capability error kind, defaulting to KindOther for
// errors that did not originate from a provider.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindOther
}

// Filesystem is the file capability operation set.
type Filesystem interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile creates missing parent directories before writing.
	WriteFile(path string, data []byte) error
	RemoveFile(path string) error
	CreateDirAll(path string) error
	RemoveDirAll(path string) error
	Exists(path string) bool
	TempDir() string
}

// Network is the network capability operation set. Both operations honor
// the caller's context for cancellation.
type Network interface {
	// Resolve resolves a hostname to at least one IP address. Zero
	// addresses is an error, not an empty success.
	Resolve(ctx context.Context, host string) ([]string, error)
	// Get performs an HTTPS GET and returns the status code and a body
	// snippet capped at 4 KiB.
	Get(ctx context.Context, url string, timeout time.Duration) (int, string, error)
}

// Clipboard is the clipboard capability operation set.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}
