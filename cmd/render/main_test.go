package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSweep(t *testing.T) {
	frames, err := parseSweep("0:360:90", 5)
	require.NoError(t, err)
	require.Len(t, frames, 4)
	assert.Equal(t, 270.0, frames[3].Pose.Angle)
	assert.Equal(t, 5.0, frames[3].Pose.AxisAngle)

	for _, bad := range []string{"", "0:360", "a:b:c", "0:360:0", "10:0:5"} {
		_, err := parseSweep(bad, 0)
		assert.Error(t, err, bad)
	}
}
