package error

import "net/http"

// NotFoundError covers lookups of records the platform never reported,
// e.g. a business connection id we have no row for.
type NotFoundError string

func (err NotFoundError) Error() string {
	return string(err)
}

func (err NotFoundError) ErrCode() string {
	return "NOT_FOUND_ERROR"
}

func (err NotFoundError) StatusCode() int {
	return http.StatusNotFound
}
