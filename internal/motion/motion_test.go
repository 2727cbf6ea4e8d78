package motion_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/motion"
)

func TestFrame_Endpoints(t *testing.T) {
	t.Parallel()

	for _, name := range motion.Curves() {
		fn, err := motion.Curve(name)
		require.NoError(t, err)

		require.InDelta(t, 0.0, motion.Frame(fn, 0, 1, 0, 10), 1e-5, name)
		require.InDelta(t, 1.0, motion.Frame(fn, 0, 1, 9, 10), 1e-5, name)
	}
}

func TestFrame_LinearMidpoint(t *testing.T) {
	t.Parallel()

	fn, err := motion.Curve("linear")
	require.NoError(t, err)

	require.InDelta(t, 0.5, motion.Frame(fn, 0, 1, 2, 5), 1e-6)
	require.InDelta(t, 3.0, motion.Frame(fn, 2, 4, 1, 3), 1e-6)
	require.Equal(t, 4.0, motion.Frame(fn, 2, 4, 0, 1))
}

func TestCurve_Unknown(t *testing.T) {
	t.Parallel()

	_, err := motion.Curve("wobble")
	require.Error(t, err)
}
