package utils

// ResponseData is the envelope every admin REST endpoint answers with.
// Status is only used to set the HTTP status code and is not serialized.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}
