package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRealError(t *testing.T) {
	assert.False(t, IsRealError(nil))
	assert.False(t, IsRealError(fsm.NoTransitionError{}))
	assert.False(t, IsRealError(fsm.CanceledError{}))
	assert.True(t, IsRealError(fsm.InvalidEventError{Event: "go", State: "a"}))
	assert.True(t, IsRealError(errors.New("boom")))
}

func TestWrapEventStoresError(t *testing.T) {
	boom := errors.New("boom")
	f := fsm.NewFSM("a",
		fsm.Events{{Name: "go", Src: []string{"a"}, Dst: "b"}},
		fsm.Callbacks{
			"after_go": WrapEvent(func(ctx context.Context, e *fsm.Event) error { return boom }),
		},
	)

	err := f.Event(context.Background(), "go")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "b", f.Current())
}
