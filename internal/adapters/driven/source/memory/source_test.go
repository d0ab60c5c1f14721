package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Read(t *testing.T) {
	s := New([]any{map[string]any{"id": "1"}})

	raw, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "memory", raw.Origin)
	assert.Equal(t, "v1", raw.Checksum)
	assert.Len(t, raw.Data, 1)
	assert.Equal(t, 1, s.Reads())
}

func TestSource_SetBumpsVersion(t *testing.T) {
	s := New([]any{})
	s.Set([]any{map[string]any{"id": "2"}})

	raw, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", raw.Checksum)
}

func TestSource_SetError(t *testing.T) {
	s := New([]any{})
	boom := errors.New("boom")

	s.SetError(boom)
	_, err := s.Read(context.Background())
	assert.ErrorIs(t, err, boom)

	s.SetError(nil)
	_, err = s.Read(context.Background())
	assert.NoError(t, err)
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]any{}).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
