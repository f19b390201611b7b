package golfgenius

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type ErrorKind string

const (
	KindAuth       ErrorKind = "auth"
	KindRateLimit  ErrorKind = "rate_limit"
	KindValidation ErrorKind = "validation"
	KindAPI        ErrorKind = "api"
)

// FieldIssue is one schema mismatch found in a provider response.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Error is returned for every failed provider call.
type Error struct {
	Kind       ErrorKind
	Endpoint   string
	Status     int
	StatusText string
	Body       string
	RetryAfter time.Duration
	Issues     []FieldIssue
	Payload    []byte
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("golf genius ")
	b.WriteString(string(e.Kind))
	b.WriteString(" error")
	if e.Endpoint != "" {
		b.WriteString(" endpoint=")
		b.WriteString(e.Endpoint)
	}
	if e.Status > 0 {
		fmt.Fprintf(&b, " status=%d", e.Status)
		if e.StatusText != "" {
			b.WriteString(" (" + e.StatusText + ")")
		}
	}
	if e.RetryAfter > 0 {
		fmt.Fprintf(&b, " retry_after=%s", e.RetryAfter)
	}
	if len(e.Issues) > 0 {
		fmt.Fprintf(&b, " issues=%d first=%s:%s", len(e.Issues), e.Issues[0].Field, e.Issues[0].Rule)
	}
	if e.Body != "" {
		b.WriteString(" body=")
		b.WriteString(abbreviate(e.Body, bodyPreviewLimit))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps provider failures onto the use case sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case usecase.ErrUnauthorized:
		return e.Kind == KindAuth
	case usecase.ErrNotFound:
		return e.Kind == KindAPI && e.Status == http.StatusNotFound
	case usecase.ErrDependencyUnavailable:
		return e.Kind == KindRateLimit || (e.Kind == KindAPI && (e.Status == 0 || e.Status >= http.StatusInternalServerError))
	default:
		return false
	}
}

// IsKind reports whether err carries a provider error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var target *Error
	if !stderrors.As(err, &target) {
		return false
	}
	return target.Kind == kind
}

func issuesFromValidation(err error) []FieldIssue {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []FieldIssue{{Field: "$", Rule: "decode", Value: err.Error()}}
	}

	out := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldIssue{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return out
}
