package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	got, err := Capacity(10, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), got)

	got, err = Capacity(31, 6)
	require.NoError(t, err)
	assert.Equal(t, uint32(186), got)
}

// A zero dimension is a data-integrity error, not a sold-out plane.
func TestCapacity_ZeroDimension(t *testing.T) {
	_, err := Capacity(0, 10)
	assert.Error(t, err)

	_, err = Capacity(10, 0)
	assert.Error(t, err)
}

func TestAirplaneCapacityMethod(t *testing.T) {
	plane := Airplane{Rows: 10, SeatsInRow: 10}
	got, err := plane.Capacity()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), got)
}
