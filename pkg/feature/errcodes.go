package feature

import "errors"

// Error taxonomy shared by the feature modules. Authentication is
// checked before any store call; validation failures abort before any
// store call; store failures surface unretried.
var (
	ErrNotAuthenticated = errors.New("please log in")
	ErrValidation       = errors.New("validation failed")
)
