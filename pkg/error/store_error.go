package error

import "net/http"

type StoreError string

func (err StoreError) Error() string {
	return string(err)
}

func (err StoreError) ErrCode() string {
	return "STORE_ERROR"
}

func (err StoreError) StatusCode() int {
	return http.StatusInternalServerError
}
