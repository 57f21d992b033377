package types

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response is the envelope of every API response.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

func (e *Response) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	if e.Status == "" {
		e.Status = http.StatusText(e.StatusCode)
	}
	return nil
}

// OK returns an empty successful response.
func OK() *Response {
	return &Response{StatusCode: http.StatusOK}
}

func ErrBadRequest(err error) render.Renderer {
	return &Response{
		StatusCode: http.StatusBadRequest,
		Error:      err.Error(),
	}
}

func ErrInternal(err error) render.Renderer {
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Error:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &Response{
		StatusCode: http.StatusNotFound,
		Error:      err.Error(),
	}
}

// ValidationResponse reports the fields of a submitted form that failed
// validation.
type ValidationResponse struct {
	*Response
	Fields map[string]string `json:"fields"`
}

// ErrValidation returns a 422 response listing the invalid fields.
func ErrValidation(fields map[string]string) render.Renderer {
	return &ValidationResponse{
		Response: &Response{
			StatusCode: http.StatusUnprocessableEntity,
			Error:      "invalid form",
		},
		Fields: fields,
	}
}
