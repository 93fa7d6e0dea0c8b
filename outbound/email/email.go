package email

import (
	"fmt"
	"github.com/spf13/viper"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

type EmailOutbound struct {
	Cfg *viper.Viper

	auth     smtp.Auth
	addr     string
	email    string
	fromName string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (out *EmailOutbound) Init() {
	out.email = out.Cfg.GetString("email.user")
	out.fromName = out.Cfg.GetString("email.from_name")
	out.addr = fmt.Sprintf("%s:%d", out.Cfg.GetString("email.host"), out.Cfg.GetInt("email.port"))
	out.auth = smtp.CRAMMD5Auth(out.Cfg.GetString("email.user"), out.Cfg.GetString("email.password"))
	out.sendMail = smtp.SendMail
}

func (out *EmailOutbound) Send(to []string, subject string, body string) error {
	message := []byte(out.compose(to, subject, body, time.Now()))

	if err := out.sendMail(out.addr, out.auth, out.email, to, message); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

func (out *EmailOutbound) compose(to []string, subject, body string, now time.Time) string {
	from := out.email
	if out.fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", out.fromName), out.email)
	}

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(to, ","),
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Date: " + now.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
