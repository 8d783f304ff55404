package dto

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginated(t *testing.T) {
	base, err := url.Parse("/api/v1/orders?status=pending&page=2&page_size=10")
	require.NoError(t, err)

	t.Run("middle page links both directions", func(t *testing.T) {
		p := NewPaginated(base, []string{"a"}, 35, 2, 10)

		assert.Equal(t, int64(35), p.Count)
		require.NotNil(t, p.Next)
		require.NotNil(t, p.Previous)
		assert.Contains(t, *p.Next, "page=3")
		assert.Contains(t, *p.Next, "status=pending")
		assert.Contains(t, *p.Previous, "page=1")
	})

	t.Run("first page has no previous", func(t *testing.T) {
		first, err := url.Parse("/api/v1/orders?page=1")
		require.NoError(t, err)

		p := NewPaginated(first, nil, 35, 1, 10)
		assert.Nil(t, p.Previous)
		require.NotNil(t, p.Next)
		assert.Contains(t, *p.Next, "page=2")
	})

	t.Run("last page has no next", func(t *testing.T) {
		last, err := url.Parse("/api/v1/orders?page=4")
		require.NoError(t, err)

		p := NewPaginated(last, nil, 35, 4, 10)
		assert.Nil(t, p.Next)
		require.NotNil(t, p.Previous)
	})

	t.Run("single page has neither link", func(t *testing.T) {
		only, err := url.Parse("/api/v1/orders")
		require.NoError(t, err)

		p := NewPaginated(only, nil, 5, 1, 20)
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Previous)
	})
}

func TestEnvelopes(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		r := NewSuccessResponse(http.StatusCreated, "created", map[string]int{"n": 1})
		assert.Equal(t, StatusSuccess, r.Status)
		assert.Equal(t, http.StatusCreated, r.Code)
		assert.Nil(t, r.Errors)
	})

	t.Run("domain error envelope carries both codes", func(t *testing.T) {
		r := NewDomainErrorResponse("INVALID_TRANSITION", "Cannot deliver a pending order")
		assert.Equal(t, StatusError, r.Status)
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)

		errs, ok := r.Errors.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, ErrCodeInvalidState, errs["code"])
		assert.Equal(t, "INVALID_TRANSITION", errs["domain_code"])
	})
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"FORBIDDEN", http.StatusForbidden},
		{"NOT_FOUND", http.StatusNotFound},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"ORDER_NOT_PAYABLE", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"UPLOAD_URL_FAILED", http.StatusInternalServerError},
		{"INVALID_DANE_CODE", http.StatusBadRequest},
		{"INVALID_QUANTITY", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}
