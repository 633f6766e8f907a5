package enquiry

import (
	"strings"

	"github.com/samber/lo"
)

// Route binds a URL path prefix to the email subject used for it.
type Route struct {
	Prefix  string
	Subject string
	Tag     string
}

// Routes are matched in order.
var Routes = []Route{
	{Prefix: "/api/contact", Subject: "Contact Form Submission", Tag: "contact"},
	{Prefix: "/api/course", Subject: "Course Enquiry", Tag: "course"},
	{Prefix: "/api/header", Subject: "Course Enquiry Popup", Tag: "header"},
}

// Match returns the first route whose prefix starts urlPath.
func Match(urlPath string) (Route, bool) {
	return lo.Find(Routes, func(r Route) bool {
		return strings.HasPrefix(urlPath, r.Prefix)
	})
}
