package constants

const (
	MAX_TOKENS_PER_REQUEST = 50
	SERVICE_NAME           = "noah-api"
)
