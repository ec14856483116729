package errors

import "errors"

var ErrNoProviderAvailable = errors.New("no provider is available")
var ErrNoOffer = errors.New("provider has no offer")
var ErrSessionNotFound = errors.New("payment session not found")
var ErrInvalidAmount = errors.New("invalid or missing payment amount")
