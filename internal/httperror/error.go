package httperror

// Error is the body of every error response.
type Error struct {
	Message string `json:"error" example:"there is no month with this ID"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}
