package github_clt

type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (r *ResponseError) Error() string {
	return r.Message
}

func NewResponseError(c int, m string) *ResponseError {
	return &ResponseError{
		Code:    c,
		Message: m,
	}
}

type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return e.err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

func NewDecodeError(err error) *DecodeError {
	return &DecodeError{err: err}
}
