package response

const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeNotFound           = 404
	CodeConflict           = 409
	CodeUnprocessable      = 422
	CodeTooManyRequests    = 429
	CodeInternal           = 500
	CodeBadGateway         = 502
	CodeServiceUnavailable = 503
)
