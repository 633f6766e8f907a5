package enquiry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fazoacademy/learn/handler"
	"github.com/fazoacademy/learn/pkg/binder"
	"github.com/fazoacademy/learn/pkg/email"
	"github.com/fazoacademy/learn/pkg/logger"
)

const invalidJSONMessage = "Invalid JSON data"

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxBodySize limits how many bytes of a request body are read.
func WithMaxBodySize(n int64) Option {
	return func(s *Service) {
		s.maxBody = n
	}
}

// Service handles the form routes.
type Service struct {
	recipient string
	mailer    *email.Dispatcher
	log       *slog.Logger
	maxBody   int64
	handlers  map[string]http.Handler
}

// NewService creates a Service that mails every submission to recipient.
func NewService(recipient string, mailer *email.Dispatcher, opts ...Option) (*Service, error) {
	if recipient == "" {
		return nil, ErrMissingRecipient
	}
	if mailer == nil {
		return nil, ErrNilDispatcher
	}

	s := &Service{
		recipient: recipient,
		mailer:    mailer,
		log:       logger.Discard(),
		maxBody:   binder.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("enquiry"))

	s.handlers = make(map[string]http.Handler, len(Routes))
	for _, rt := range Routes {
		s.handlers[rt.Prefix] = s.handler(rt)
	}
	return s, nil
}

// Submit renders the submission and sends it. Failures come back as an
// error Result; Submit never returns a Go error.
func (s *Service) Submit(ctx context.Context, rt Route, sub FormSubmission) email.Result {
	log := s.log.With(logger.Route(rt.Prefix))
	log.InfoContext(ctx, "form submission received", slog.Any("submission", sub))

	body, err := RenderBody(ctx, rt.Subject, sub)
	if err != nil {
		log.ErrorContext(ctx, "render email body", logger.Error(err))
		return email.Result{Status: email.StatusError, Message: err.Error()}
	}

	params := email.SendEmailParams{
		SendTo:   s.recipient,
		Subject:  rt.Subject,
		BodyHTML: body,
		Tag:      rt.Tag,
	}
	if sub.Email.IsSet() && email.IsValidAddress(sub.Email.value) {
		params.ReplyTo = sub.Email.value
	}
	return s.mailer.Dispatch(ctx, params)
}

// Lookup returns the handler for the form route matching urlPath.
func (s *Service) Lookup(urlPath string) (http.Handler, bool) {
	rt, ok := Match(urlPath)
	if !ok {
		return nil, false
	}
	return s.handlers[rt.Prefix], true
}

func (s *Service) handler(rt Route) http.Handler {
	return handler.Wrap(
		func(ctx handler.Context, sub FormSubmission) handler.Response {
			return handler.JSON(s.Submit(ctx, rt, sub))
		},
		handler.WithBinder[FormSubmission](binder.JSONObject(s.maxBody)),
		handler.WithErrorHandler[FormSubmission](s.errorHandler(rt)),
	)
}

func (s *Service) errorHandler(rt Route) handler.ErrorHandler {
	return func(ctx handler.Context, err error) {
		log := s.log.With(logger.Route(rt.Prefix))
		result := email.Result{Status: email.StatusError, Message: invalidJSONMessage}
		if errors.Is(err, binder.ErrInvalidJSON) {
			log.WarnContext(ctx, "invalid JSON data", logger.Error(err))
		} else {
			log.ErrorContext(ctx, "form request failed", logger.Error(err))
			result.Message = http.StatusText(http.StatusInternalServerError)
		}

		if rerr := handler.JSON(result).Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
			log.ErrorContext(ctx, "write error response", logger.Error(rerr))
		}
	}
}
