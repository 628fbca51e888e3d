package handler

const (
	msgRegistered          = "Successful register"
	msgLoggedIn            = "Successful login"
	msgBlacklisted         = "The user is blacklisted by PLD, and therefore the account cannot be created."
	msgDuplicateEmail      = "email already registered"
	msgInvalidPayload      = "invalid payload"
	msgRegisterUnavailable = "Unable to verify data at this time, please try again later."
	msgWrongCredentials    = "Wrong email or password"
	msgUnauthorized        = "Unauthorized"
	msgInternal            = "Internal Server Error"
)

type tokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"`
	Type  string `json:"type" example:"Bearer"`
}

type authResponse struct {
	Message string        `json:"message" example:"Successful login"`
	Auth    tokenResponse `json:"auth"`
}

// errorsResponse carries client-correctable defects, one message each.
type errorsResponse struct {
	Errors []string `json:"errors" example:"email already registered"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error" example:"Internal Server Error"`
}
