package error

// GenericError is implemented by every typed application error so the
// recovery middleware can map a panic back to a proper HTTP status.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
