package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

func TestFail_WrapsWithContext(t *testing.T) {
	err := fail("goal delete", types.ErrNotFound)

	assert.EqualError(t, err, "goal delete: not found")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestIsUserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", fail("goal update", types.ErrNotFound), true},
		{"system category guard", types.ErrSystemCategory, true},
		{"import format", fmt.Errorf("import: %w", types.ErrImportFormat), true},
		{"invalid id", types.ErrInvalidID, true},
		{"invalid name", types.ErrInvalidName, true},
		{"usage mistake", fmt.Errorf("%w: unknown type", errUsage), true},
		{"storage failure", errors.New("disk full"), false},
		{"detached store", types.ErrStoreDetached, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUserError(tt.err))
		})
	}
}
