// Package mail sends email with an optional HTML body and file attachment.
//
// Messages are assembled with go-mail and delivered through an SMTP relay
// (Gmail by default) using mandatory STARTTLS and PLAIN authentication. The
// credentials come from the sendEmail section of the script's config file.
//
//	sender := mail.NewSender(mail.SettingsFromFile(file), log)
//	err := sender.Send(ctx, mail.Message{
//	    To:             "ops@example.com",
//	    Subject:        "nightly report",
//	    Text:           "See attachment",
//	    AttachmentPath: "/var/log/report.txt",
//	})
//
// All failures wrap errors.ErrMailFailed.
package mail
