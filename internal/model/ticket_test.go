package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeat_InsideGrid(t *testing.T) {
	plane := Airplane{Rows: 10, SeatsInRow: 10}

	assert.NoError(t, ValidateSeat(1, 1, plane))
	assert.NoError(t, ValidateSeat(10, 10, plane))
	assert.NoError(t, ValidateSeat(5, 7, plane))
}

func TestValidateSeat_RowOutOfRange(t *testing.T) {
	plane := Airplane{Rows: 10, SeatsInRow: 10}

	err := ValidateSeat(11, 1, plane)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "row", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "(1, 10)")
}

func TestValidateSeat_SeatOutOfRange(t *testing.T) {
	plane := Airplane{Rows: 4, SeatsInRow: 6}

	err := ValidateSeat(2, 7, plane)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "seat", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "(1, 6)")
}

// Both dimensions are reported together, not short-circuited.
func TestValidateSeat_BothOutOfRange(t *testing.T) {
	plane := Airplane{Rows: 3, SeatsInRow: 3}

	err := ValidateSeat(0, 99, plane)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "row", verr.Fields[0].Field)
	assert.Equal(t, "seat", verr.Fields[1].Field)
}

// Rejection is idempotent: the same invalid input yields the same error.
func TestValidateSeat_RepeatedRejection(t *testing.T) {
	plane := Airplane{Rows: 10, SeatsInRow: 10}

	first := ValidateSeat(11, 1, plane)
	second := ValidateSeat(11, 1, plane)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}
