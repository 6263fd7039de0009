package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure for routing decisions: validation flags
// re-render the current window, transport failures surface a generic
// retry line, auth mismatches never reach the user.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindTransport
	KindDecode
	KindInsufficientBalance
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

type CustomizedError struct {
	cause   error
	message string
	trace   []string
	wrap    error
	code    int
	kind    Kind
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
	}
}

func (e *CustomizedError) Code(c int) *CustomizedError {
	e.code = c
	return e
}

func (e *CustomizedError) GetCode() int {
	return e.code
}

func (e *CustomizedError) Kind(k Kind) *CustomizedError {
	e.kind = k
	return e
}

func (e *CustomizedError) GetKind() Kind {
	return e.kind
}

func Wrap(err error, trace, message string) *CustomizedError {
	ce := &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		wrap:    err,
	}
	var income *CustomizedError
	if errors.As(err, &income) {
		ce.code = income.code
		ce.kind = income.kind
	}
	return ce
}

// Trace appends a call-site marker without changing code or kind.
// A nil err stays nil so call sites can wrap returns unconditionally.
func Trace(trace string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CustomizedError
	if errors.As(err, &ce) {
		ce.trace = append(ce.trace, trace)
		return ce
	}
	return Wrap(err, trace, err.Error())
}

func (e *CustomizedError) Message() string {
	if e.message == "" && e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

func (e *CustomizedError) Unwrap() error {
	return e.wrap
}

func (e *CustomizedError) Error() string {
	otherDetails := `""`
	if ce, ok := e.wrap.(*CustomizedError); ok {
		otherDetails = ce.Error()
	} else if e.wrap != nil {
		otherDetails = fmt.Sprint("\"", e.wrap.Error(), "\"")
	}
	return fmt.Sprintf(`{"trace":"%s","kind":"%s","code":%d,"msg":"%s","error":"%v","wrapd":%s}`,
		strings.Join(e.trace, "->"), e.kind, e.code, e.message, e.cause, otherDetails)
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ce *CustomizedError
	if errors.As(err, &ce) {
		return ce.kind
	}
	return KindInternal
}

func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func NewTransport(trace string, err error) *CustomizedError {
	return New(trace, "upstream service unavailable", err).
		Kind(KindTransport).Code(http.StatusBadGateway)
}

func NewDecode(trace string, err error) *CustomizedError {
	return New(trace, "upstream response malformed", err).
		Kind(KindDecode).Code(http.StatusBadGateway)
}

func NewInsufficientBalance(trace string) *CustomizedError {
	return New(trace, "insufficient organization balance", nil).
		Kind(KindInsufficientBalance).Code(http.StatusPaymentRequired)
}

func NewAuth(trace string) *CustomizedError {
	return New(trace, "unauthorized", nil).
		Kind(KindAuth).Code(http.StatusUnauthorized)
}

func NewValidation(trace, message string) *CustomizedError {
	return New(trace, message, nil).
		Kind(KindValidation).Code(http.StatusBadRequest)
}
