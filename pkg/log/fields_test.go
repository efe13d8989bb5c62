package log

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestToFields(t *testing.T) {
	err := errors.New("sheet unavailable")

	tests := []struct {
		name     string
		input    []any
		wantKeys []string
	}{
		{"empty input", []any{}, nil},
		{"string-int-bool", []any{"vehicle", "ABC-123", "km", 5000, "due", true}, []string{"vehicle", "km", "due"}},
		{"time and duration", []any{"at", time.Now(), "took", time.Second}, []string{"at", "took"}},
		{"error only", []any{err}, []string{"error"}},
		{"zap field passthrough", []any{zap.String("tier", "HIGH"), "score", 5}, []string{"tier", "score"}},
		{"odd number of args", []any{"vehicle", "ABC-123", "dangling"}, []string{"vehicle", "arg#2"}},
		{"non-string key", []any{123, "value"}, []string{"invalid_key_1"}},
		{"nil values", []any{"a", nil}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := toFields(tt.input...)

			var keys []string
			for _, f := range fields {
				assert.NotEmpty(t, f.Key)
				keys = append(keys, f.Key)
			}
			assert.Equal(t, tt.wantKeys, keys)
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	o := NewOptions()
	assert.Empty(t, o.Validate())

	o.Format = "xml"
	o.Level = "trace"
	assert.Len(t, o.Validate(), 2)
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	l := FromContext(context.Background())
	assert.NotNil(t, l.GetSink())

	ctx := NewContext(context.Background(), NewNopLogger().WithName("req"))
	assert.NotNil(t, FromContext(ctx).GetSink())
}
