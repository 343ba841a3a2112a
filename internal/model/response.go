package model

// Response is the error envelope returned by every failing endpoint.
type Response struct {
	Error string `json:"error"`
}

func NewResponse(message string) Response {
	return Response{Error: message}
}
