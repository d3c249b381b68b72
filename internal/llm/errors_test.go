package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "connection",
			err:  &Error{Kind: KindConnection},
			want: "Cannot connect",
		},
		{
			name: "timeout",
			err:  &Error{Kind: KindTimeout},
			want: "timed out",
		},
		{
			name: "auth",
			err:  &Error{Kind: KindAPI, StatusCode: 401},
			want: "Authentication failed",
		},
		{
			name: "model not found",
			err:  &Error{Kind: KindAPI, StatusCode: 404},
			want: "Model not found",
		},
		{
			name: "other api status",
			err:  &Error{Kind: KindAPI, StatusCode: 500},
			want: "status 500",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Hint(); !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &Error{Kind: KindUnknown, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}
}
