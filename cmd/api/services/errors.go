package services

import "errors"

// ErrValidation marks a request the caller must fix; handlers answer 400.
var ErrValidation = errors.New("validation failed")

// ErrAlreadySubscribed is returned when the email is already on the list.
var ErrAlreadySubscribed = errors.New("email already subscribed")
