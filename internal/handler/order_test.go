package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/airport-reservation/internal/model"
	"github.com/skylane/airport-reservation/internal/repository"
)

func newOrderCtx(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOrderCreateWithoutIdentity(t *testing.T) {
	h := NewOrderHandler(repository.NewOrderRepo(nil), nil)
	c, rec := newOrderCtx(t, `{"tickets":[{"row":1,"seat":1,"flight":1}]}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderCreateInvalidBody(t *testing.T) {
	h := NewOrderHandler(repository.NewOrderRepo(nil), nil)
	c, rec := newOrderCtx(t, `{"tickets":`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderCreateEmptyTickets(t *testing.T) {
	h := NewOrderHandler(repository.NewOrderRepo(nil), nil)
	c, rec := newOrderCtx(t, `{"tickets":[]}`)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least one ticket")
}

func TestMapCreateErrSeatTaken(t *testing.T) {
	h := NewOrderHandler(repository.NewOrderRepo(nil), nil)
	c, rec := newOrderCtx(t, "")

	err := &repository.TicketRequestError{Index: 2, Err: repository.ErrSeatTaken}
	require.NoError(t, h.mapCreateErr(c, err))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ticket":2`)
}

func TestMapCreateErrValidation(t *testing.T) {
	h := NewOrderHandler(repository.NewOrderRepo(nil), nil)
	c, rec := newOrderCtx(t, "")

	verr := &model.ValidationError{Fields: []model.FieldError{
		{Field: "row", Message: "row number must be in available range: (1, 10)"},
		{Field: "seat", Message: "seat number must be in available range: (1, 6)"},
	}}
	err := &repository.TicketRequestError{Index: 0, Err: verr}
	require.NoError(t, h.mapCreateErr(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"row"`)
	assert.Contains(t, rec.Body.String(), `"seat"`)
}

func TestMapCreateErrUnknownFlight(t *testing.T) {
	h := NewOrderHandler(repository.NewOrderRepo(nil), nil)
	c, rec := newOrderCtx(t, "")

	err := &repository.TicketRequestError{Index: 1, Err: repository.ErrFlightNotFound}
	require.NoError(t, h.mapCreateErr(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "flight not found")
}

func TestQueryIntDefaultsAndClamping(t *testing.T) {
	e := echo.New()

	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, defaultPageSize},
		{"page=3&page_size=25", 3, 25},
		{"page=0&page_size=0", 1, defaultPageSize},
		{"page=-4&page_size=100000", 1, maxPageSize},
		{"page=abc&page_size=abc", 1, defaultPageSize},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/orders?"+tc.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())

		page := queryInt(c, "page", 1)
		if page < 1 {
			page = 1
		}
		size := queryInt(c, "page_size", defaultPageSize)
		if size < 1 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.pageSize, size, tc.query)
	}
}

func TestGetUserIDRepresentations(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	for _, v := range []interface{}{uint64(42), int(42), int64(42), float64(42), "42"} {
		c.Set("user_id", v)
		id, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), id)
	}

	c.Set("user_id", nil)
	_, err := getUserID(c)
	assert.Error(t, err)
}
