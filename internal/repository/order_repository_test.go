package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airport-reservation/internal/model"
)

func newOrderRepoMock(t *testing.T) (*OrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepo(db), mock
}

func expectLayoutLookup(mock sqlmock.Sqlmock, flightID uint64, rows, seats uint32) {
	mock.ExpectQuery("SELECT a.row_count, a.seats_in_row").
		WithArgs(flightID).
		WillReturnRows(sqlmock.NewRows([]string{"row_count", "seats_in_row"}).AddRow(rows, seats))
}

func TestCreateWithTicketsRejectsEmptyOrder(t *testing.T) {
	repo, _ := newOrderRepoMock(t)

	_, err := repo.CreateWithTickets(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = repo.CreateWithTickets(context.Background(), 7, []TicketRequest{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateWithTicketsCommitsAllOrNothing(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	expectLayoutLookup(mock, 3, 10, 6)
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(2), uint32(4), uint64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(101, 1))

	expectLayoutLookup(mock, 3, 10, 6)
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(2), uint32(5), uint64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(102, 1))

	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
	mock.ExpectCommit()

	order, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 2, Seat: 4, FlightID: 3},
		{Row: 2, Seat: 5, FlightID: 3},
	})
	require.NoError(t, err)
	require.Len(t, order.Tickets, 2)
	assert.Equal(t, uint64(11), order.ID)
	assert.Equal(t, uint64(101), order.Tickets[0].ID)
	assert.Equal(t, uint64(102), order.Tickets[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsDuplicateSeatRollsBack(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	expectLayoutLookup(mock, 3, 10, 6)
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(1), uint32(1), uint64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(101, 1))

	expectLayoutLookup(mock, 3, 10, 6)
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(1), uint32(2), uint64(3), int64(11)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: 3},
		{Row: 1, Seat: 2, FlightID: 3},
	})
	require.Error(t, err)

	var reqErr *TicketRequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 1, reqErr.Index)
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsOffGridSeatRollsBack(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	expectLayoutLookup(mock, 3, 10, 6)
	mock.ExpectRollback()

	_, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 11, Seat: 7, FlightID: 3},
	})
	require.Error(t, err)

	var reqErr *TicketRequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 0, reqErr.Index)

	var verr *model.ValidationError
	require.ErrorAs(t, reqErr.Err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsUnknownFlightRollsBack(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT a.row_count, a.seats_in_row").
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"row_count", "seats_in_row"}))
	mock.ExpectRollback()

	_, err := repo.CreateWithTickets(context.Background(), 7, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: 999},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFlightNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUserHidesForeignOrders(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(5), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	_, err := repo.GetByIDForUser(context.Background(), 5, 7)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRequestErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &TicketRequestError{Index: 3, Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "ticket 3")
}
