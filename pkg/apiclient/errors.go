package apiclient

// StatusError is returned for endpoint failures that carried an HTTP
// response. Message is suitable for direct display; Status is exported so
// consumers can apply their own policy to specific codes (for example
// forcing a logout when a protected fetch keeps returning 401).
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}
