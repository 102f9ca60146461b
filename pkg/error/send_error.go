package error

import "net/http"

// SendError reports a Telegram API call the platform rejected, e.g. a
// failed webhook registration.
type SendError string

func (err SendError) Error() string {
	return string(err)
}

func (err SendError) ErrCode() string {
	return "SEND_ERROR"
}

func (err SendError) StatusCode() int {
	return http.StatusBadGateway
}
