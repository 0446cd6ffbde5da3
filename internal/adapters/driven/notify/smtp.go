package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
)

// Ensure SMTP implements the interface.
var _ driven.Notifier = (*SMTP)(nil)

// SMTP mails a plain-text notification naming the changes report.
// The report itself stays in the storage directory; mailing the path
// keeps the notifier independent of the spreadsheet format.
type SMTP struct {
	addr string
	auth smtp.Auth
	from string
	to   []string

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP creates an SMTP notifier. Username may be empty for servers
// that accept unauthenticated relay.
func NewSMTP(host string, port int, username, password, from string, to []string) *SMTP {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTP{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
		to:   to,
		send: smtp.SendMail,
	}
}

// Notify sends the notification mail. net/smtp has no context support;
// the server connection uses its own timeouts.
func (s *SMTP) Notify(_ context.Context, changesReportPath string) error {
	if len(s.to) == 0 {
		return fmt.Errorf("no recipients configured")
	}
	if err := s.send(s.addr, s.auth, s.from, s.to, s.message(changesReportPath)); err != nil {
		return fmt.Errorf("send mail via %s: %w", s.addr, err)
	}
	return nil
}

func (s *SMTP) message(changesReportPath string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + s.from + "\r\n")
	sb.WriteString("To: " + strings.Join(s.to, ", ") + "\r\n")
	sb.WriteString("Subject: Exclusion list changed: " + filepath.Base(changesReportPath) + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("The watched exclusion list changed since the previous run.\r\n")
	sb.WriteString("The changes report was written to:\r\n\r\n")
	sb.WriteString("    " + changesReportPath + "\r\n")
	return []byte(sb.String())
}
