//go:build unix

package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireInstance_Exclusive(t *testing.T) {
	dir := t.TempDir()
	first, err := AcquireInstance(dir)
	require.NoError(t, err)

	_, err = AcquireInstance(dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	require.NoError(t, first.Release(), "second release is a no-op")

	again, err := AcquireInstance(dir)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
