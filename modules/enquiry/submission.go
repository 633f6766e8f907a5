package enquiry

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/samber/lo"
)

// Placeholder stands in for fields the visitor did not send.
const Placeholder = "N/A"

// Field is a form value that accepts any JSON scalar.
// Strings are kept as is; numbers and booleans keep their JSON text.
// An absent or null field is unset.
type Field struct {
	value string
	set   bool
}

// NewField returns a set field holding s.
func NewField(s string) Field {
	return Field{value: s, set: true}
}

func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = Field{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = NewField(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*f = NewField(buf.String())
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// IsSet reports whether the field was present and not null.
func (f Field) IsSet() bool {
	return f.set
}

// String returns the value, or Placeholder when unset.
// An empty string that was sent explicitly stays empty.
func (f Field) String() string {
	return lo.Ternary(f.set, f.value, Placeholder)
}

// FormSubmission is the body posted by the site's contact and course forms.
type FormSubmission struct {
	Name    Field `json:"name"`
	Email   Field `json:"email"`
	Subject Field `json:"subject"`
	Message Field `json:"message"`
	Mobile  Field `json:"mobile"`
	Courses Field `json:"courses"`
}

// LogValue implements slog.LogValuer.
func (s FormSubmission) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name.String()),
		slog.String("email", s.Email.String()),
		slog.String("subject", s.Subject.String()),
		slog.Int("message_len", len(s.Message.value)),
		slog.String("mobile", s.Mobile.String()),
		slog.String("courses", s.Courses.String()),
	)
}
