// Package notify implements the Notifier port. The console notifier
// logs the generated changes report path; the SMTP notifier mails a
// short plain-text message pointing at it.
package notify
