package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browseCtx(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/flights?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseTimeParamRFC3339(t *testing.T) {
	c := browseCtx("departure_after=2026-09-01T10%3A30%3A00Z")

	got, msg := parseTimeParam(c, "departure_after")
	require.Nil(t, msg)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), *got)
}

func TestParseTimeParamBareDate(t *testing.T) {
	c := browseCtx("departure_before=2026-09-01")

	got, msg := parseTimeParam(c, "departure_before")
	require.Nil(t, msg)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseTimeParamAbsent(t *testing.T) {
	c := browseCtx("")

	got, msg := parseTimeParam(c, "arrival_after")
	assert.Nil(t, got)
	assert.Nil(t, msg)
}

func TestParseTimeParamInvalid(t *testing.T) {
	c := browseCtx("arrival_before=yesterday")

	got, msg := parseTimeParam(c, "arrival_before")
	assert.Nil(t, got)
	require.NotNil(t, msg)
}

func TestFlightListRejectsBadFilter(t *testing.T) {
	h := NewFlightBrowseHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/flights?departure_after=not-a-date", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "departure_after")
}
