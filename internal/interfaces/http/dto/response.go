package dto

import (
	"net/http"
	"net/url"
	"strconv"
)

// Response status tags
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope every API endpoint returns. Code carries the
// HTTP status so clients behind envelope-flattening proxies can still
// tell outcomes apart.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Code    int    `json:"code"`
	Errors  any    `json:"errors,omitempty"`
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(code int, message string, data any) Response {
	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
		Code:    code,
	}
}

// NewErrorResponse creates an error envelope. errs holds structured
// detail: a field->message map for validation failures or an object with
// the domain error code.
func NewErrorResponse(code int, message string, errs any) Response {
	return Response{
		Status:  StatusError,
		Message: message,
		Data:    nil,
		Code:    code,
		Errors:  errs,
	}
}

// Paginated is the data payload for list endpoints. Next and Previous are
// full request URLs with the page query parameter adjusted, nil at the
// edges.
type Paginated struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Items    any     `json:"items"`
}

// NewPaginated builds the paginated payload from the request URL that
// produced the page
func NewPaginated(requestURL *url.URL, items any, count int64, page, pageSize int) Paginated {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(count) / pageSize
	if int(count)%pageSize > 0 {
		totalPages++
	}

	p := Paginated{
		Count: count,
		Items: items,
	}
	if page < totalPages {
		p.Next = pageURL(requestURL, page+1)
	}
	if page > 1 && page <= totalPages+1 {
		p.Previous = pageURL(requestURL, page-1)
	}
	return p
}

func pageURL(requestURL *url.URL, page int) *string {
	u := *requestURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// OK is shorthand for a 200 success envelope
func OK(data any) Response {
	return NewSuccessResponse(http.StatusOK, "ok", data)
}
