package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid mail configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
	ErrNilSender         = errors.New("email sender is required")
	ErrUnknownDriver     = errors.New("unknown mail driver")
)
