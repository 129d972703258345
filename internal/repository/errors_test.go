package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '3-1-1' for key 'uq_ticket_flight_row_seat'"}
	assert.True(t, isDuplicateKey(dup))
	assert.True(t, isDuplicateKey(fmt.Errorf("insert ticket: %w", dup)))

	other := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.False(t, isDuplicateKey(other))
	assert.False(t, isDuplicateKey(errors.New("duplicate entry")))
	assert.False(t, isDuplicateKey(nil))
}
