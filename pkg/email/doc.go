// Package email delivers notification mail.
//
// EmailSender is the delivery abstraction. Three implementations exist,
// selected by Config.Driver through NewSender:
//
//   - DriverSMTP: an SMTP relay via gopkg.in/gomail.v2 (implicit TLS,
//     STARTTLS or plain).
//   - DriverPostmark: the Postmark transactional API.
//   - DriverDev: writes each message to disk as .html plus .json metadata.
//
// Dispatcher sits in front of a sender and never returns an error: every
// send is converted into a Result value with status "success" or "error",
// which is what HTTP handlers report back to the browser.
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//		return err
//	}
//	d, err := email.NewDispatcher(sender, log)
//	if err != nil {
//		return err
//	}
//	res := d.SendMail(ctx, cfg.Recipient, "Course Enquiry", body)
//	if !res.OK() {
//		// res.Message carries the mailer error
//	}
//
// Each call makes exactly one delivery attempt; there is no retry or queue.
//
// # Errors
//
//   - ErrInvalidConfig: sender construction failed validation.
//   - ErrInvalidParams: SendEmailParams failed validation.
//   - ErrFailedToSendEmail: the transport rejected or failed the send.
package email
