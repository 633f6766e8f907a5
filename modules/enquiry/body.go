package enquiry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/fazoacademy/learn/pkg/email/templates"
)

// Body renders the notification email for one submission.
func Body(subject string, s FormSubmission) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>" + templ.EscapeString(subject) + "</h2>\n")
		row(&b, "p", "Name", templ.EscapeString(s.Name.String()))
		row(&b, "p", "Email", templ.EscapeString(s.Email.String()))
		row(&b, "p", "Subject", templ.EscapeString(s.Subject.String()))
		row(&b, "p", "Message", lineBreaks(templ.EscapeString(s.Message.String())))
		row(&b, "p", "Mobile", templ.EscapeString(s.Mobile.String()))
		row(&b, "h3", "Course", templ.EscapeString(s.Courses.String()))

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RenderBody renders Body into a string.
func RenderBody(ctx context.Context, subject string, s FormSubmission) (string, error) {
	out, err := templates.Render(ctx, Body(subject, s))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderBody, err)
	}
	return out, nil
}

func row(b *strings.Builder, tag, label, value string) {
	fmt.Fprintf(b, "<%s><strong>%s:</strong> %s</%s>\n", tag, label, value, tag)
}

// lineBreaks inserts "<br />" before every line break, treating
// "\r\n" and "\n\r" as one break. The breaks themselves are kept.
func lineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\r' && c != '\n' {
			b.WriteByte(c)
			continue
		}
		b.WriteString("<br />")
		b.WriteByte(c)
		if i+1 < len(s) && (s[i+1] == '\r' || s[i+1] == '\n') && s[i+1] != c {
			i++
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
