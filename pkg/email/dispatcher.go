package email

import (
	"context"
	"log/slog"

	"github.com/fazoacademy/learn/pkg/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	messageSent         = "Message has been sent"
	messageNotSentError = "Message could not be sent. Mailer Error: "
)

// Result is the outcome of one dispatch, shaped for the JSON API.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the message was handed to the transport.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Dispatcher converts sender errors into Result values.
type Dispatcher struct {
	sender EmailSender
	log    *slog.Logger
}

// NewDispatcher wraps sender. A nil logger discards; a nil sender is
// rejected with ErrNilSender.
func NewDispatcher(sender EmailSender, log *slog.Logger) (*Dispatcher, error) {
	if sender == nil {
		return nil, ErrNilSender
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Dispatcher{sender: sender, log: log.With(logger.Component("mailer"))}, nil
}

// SendMail sends an HTML message to one recipient.
func (d *Dispatcher) SendMail(ctx context.Context, to, subject, bodyHTML string) Result {
	return d.Dispatch(ctx, SendEmailParams{SendTo: to, Subject: subject, BodyHTML: bodyHTML})
}

// Dispatch makes a single synchronous delivery attempt.
func (d *Dispatcher) Dispatch(ctx context.Context, params SendEmailParams) Result {
	if err := d.sender.SendEmail(ctx, params); err != nil {
		d.log.ErrorContext(ctx, "mail delivery failed",
			logger.Recipient(params.SendTo),
			logger.Subject(params.Subject),
			logger.Error(err),
		)
		return Result{Status: StatusError, Message: messageNotSentError + err.Error()}
	}

	d.log.InfoContext(ctx, "mail delivered",
		logger.Recipient(params.SendTo),
		logger.Subject(params.Subject),
	)
	return Result{Status: StatusSuccess, Message: messageSent}
}
