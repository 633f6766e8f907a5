package enquiry

import "errors"

var (
	ErrMissingRecipient = errors.New("enquiry: recipient address is required")
	ErrNilDispatcher    = errors.New("enquiry: dispatcher is required")
	ErrRenderBody       = errors.New("enquiry: failed to render email body")
)
