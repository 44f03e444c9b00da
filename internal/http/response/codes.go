package response

const (
	CodeOK              = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
