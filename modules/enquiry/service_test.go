package enquiry_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fazoacademy/learn/modules/enquiry"
	"github.com/fazoacademy/learn/pkg/email"
)

const recipient = "office@example.org"

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func newService(t *testing.T, sender email.EmailSender) *enquiry.Service {
	t.Helper()
	d, err := email.NewDispatcher(sender, nil)
	require.NoError(t, err)
	svc, err := enquiry.NewService(recipient, d)
	require.NoError(t, err)
	return svc
}

func post(t *testing.T, svc *enquiry.Service, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	h, ok := svc.Lookup(path)
	require.True(t, ok, "no handler for %s", path)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestNewService(t *testing.T) {
	t.Parallel()

	d, err := email.NewDispatcher(&mockSender{}, nil)
	require.NoError(t, err)

	_, err = enquiry.NewService("", d)
	assert.ErrorIs(t, err, enquiry.ErrMissingRecipient)

	_, err = enquiry.NewService(recipient, nil)
	assert.ErrorIs(t, err, enquiry.ErrNilDispatcher)
}

func TestService_Lookup(t *testing.T) {
	t.Parallel()

	svc := newService(t, &mockSender{})

	_, ok := svc.Lookup("/api/contact")
	assert.True(t, ok)
	_, ok = svc.Lookup("/api/unknown")
	assert.False(t, ok)
}

func TestService_Handler(t *testing.T) {
	t.Parallel()

	const fullBody = `{"name":"Ann","email":"ann@example.org","subject":"Hi","message":"Line1\nLine2","mobile":"555","courses":"Go"}`

	t.Run("full submission sends one mail", func(t *testing.T) {
		t.Parallel()

		var sent []email.SendEmailParams
		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = append(sent, args.Get(1).(email.SendEmailParams)) }).
			Return(nil).Once()

		rec := post(t, newService(t, sender), "/api/contact", fullBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"success","message":"Message has been sent"}`, rec.Body.String())

		require.Len(t, sent, 1)
		msg := sent[0]
		assert.Equal(t, recipient, msg.SendTo)
		assert.Equal(t, "Contact Form Submission", msg.Subject)
		assert.Equal(t, "ann@example.org", msg.ReplyTo)
		assert.Equal(t, "contact", msg.Tag)
		for _, v := range []string{"Ann", "ann@example.org", "Hi", "Line1<br />\nLine2", "555", "Go"} {
			assert.Contains(t, msg.BodyHTML, v)
		}
		sender.AssertExpectations(t)
	})

	t.Run("invalid reply address is dropped", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.ReplyTo == "" && strings.Contains(p.BodyHTML, "not-an-address")
		})).Return(nil).Once()

		rec := post(t, newService(t, sender), "/api/course", `{"email":"not-an-address"}`)

		assert.JSONEq(t, `{"status":"success","message":"Message has been sent"}`, rec.Body.String())
		sender.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{"not json", "", "{}", "null", "[]", `"text"`} {
			sender := &mockSender{}
			rec := post(t, newService(t, sender), "/api/header", body)

			assert.Equal(t, http.StatusOK, rec.Code, "body %q", body)
			assert.Equal(t, `{"status":"error","message":"Invalid JSON data"}`, rec.Body.String(), "body %q", body)
			sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
		}
	})

	t.Run("delivery failure is reported", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Return(errors.New("failed to send email: dial tcp: connection refused")).Once()

		rec := post(t, newService(t, sender), "/api/contact", fullBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"status":"error","message":"Message could not be sent. Mailer Error: failed to send email: dial tcp: connection refused"}`,
			rec.Body.String())
	})

	t.Run("concurrent submissions keep their labels", func(t *testing.T) {
		t.Parallel()

		var (
			mu       sync.Mutex
			subjects = map[string]int{}
		)
		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(email.SendEmailParams)
				mu.Lock()
				subjects[p.Subject]++
				mu.Unlock()
			}).
			Return(nil)

		svc := newService(t, sender)
		paths := []string{"/api/contact", "/api/course", "/api/header"}

		var wg sync.WaitGroup
		for i := 0; i < 30; i++ {
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				h, _ := svc.Lookup(path)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(fullBody)))
				assert.JSONEq(t, `{"status":"success","message":"Message has been sent"}`, rec.Body.String())
			}(paths[i%len(paths)])
		}
		wg.Wait()

		assert.Equal(t, map[string]int{
			"Contact Form Submission": 10,
			"Course Enquiry":          10,
			"Course Enquiry Popup":    10,
		}, subjects)
	})
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.Subject == "Course Enquiry Popup" && p.Tag == "header" && p.ReplyTo == ""
	})).Return(nil).Once()

	rt, ok := enquiry.Match("/api/header")
	require.True(t, ok)

	res := newService(t, sender).Submit(context.Background(), rt, enquiry.FormSubmission{
		Name: enquiry.NewField("Bo"),
	})

	assert.True(t, res.OK())
	sender.AssertExpectations(t)
}
