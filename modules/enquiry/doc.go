// Package enquiry turns website form posts into notification emails.
//
// Three routes share one flow: the JSON body is bound into a FormSubmission,
// rendered into an HTML body with every value escaped, and handed to an
// email.Dispatcher. The dispatch Result is returned to the browser as
// {"status": ..., "message": ...} with HTTP 200.
package enquiry
