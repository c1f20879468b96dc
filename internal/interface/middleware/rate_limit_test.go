package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemainingClampsAtZero(t *testing.T) {
	require.Equal(t, 9, remaining(10, 1))
	require.Equal(t, 0, remaining(10, 10))
	require.Equal(t, 0, remaining(10, 11))
	require.Equal(t, 0, remaining(10, 250))
}

func TestToInt(t *testing.T) {
	require.Equal(t, 3, toInt(int64(3)))
	require.Equal(t, 3, toInt(3))
	require.Equal(t, 3, toInt("3"))
	require.Equal(t, 0, toInt("nope"))
	require.Equal(t, 0, toInt(nil))
}
