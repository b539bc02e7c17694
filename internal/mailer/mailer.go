// Package mailer envio de e-mail via SMTP configurado por variáveis de
// ambiente. Falha de envio nunca derruba a operação que a disparou; o
// resultado volta para o chamador decidir o que exibir.
package mailer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

// Message um e-mail a enviar. HTML é opcional.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Result resultado do envio; Err preenchido quando Ok é falso.
type Result struct {
	Ok  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
}

func env(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Configured verdadeiro quando há servidor SMTP configurado.
func Configured() bool {
	return env("SMTP_HOST", "SMTP_SERVER") != ""
}

// Send envia a mensagem pelo SMTP do ambiente. Sem SMTP configurado devolve
// um Result de falha, não um erro.
func Send(msg Message) Result {
	host := env("SMTP_HOST", "SMTP_SERVER")
	if host == "" {
		return Result{Ok: false, Err: "SMTP_HOST/SMTP_SERVER não configurado."}
	}

	port := 587
	if raw := env("SMTP_PORT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			port = n
		}
	}
	secure := strings.EqualFold(env("SMTP_SECURE"), "true") || port == 465

	user := env("SMTP_USER")
	pass := env("SMTP_PASS", "SMTP_PASSWORD")

	fromEmail := env("SMTP_FROM")
	if fromEmail == "" {
		fromEmail = user
	}
	if fromEmail == "" {
		fromEmail = "no-reply@" + host
	}
	fromName := env("SMTP_FROM_NAME")

	opts := []gomail.Option{
		gomail.WithPort(port),
	}
	if secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}
	if user != "" && pass != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(user),
			gomail.WithPassword(pass),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return Result{Ok: false, Err: fmt.Sprintf("cliente SMTP: %v", err)}
	}

	m := gomail.NewMsg()
	if fromName != "" {
		err = m.FromFormat(fromName, fromEmail)
	} else {
		err = m.From(fromEmail)
	}
	if err != nil {
		return Result{Ok: false, Err: fmt.Sprintf("remetente inválido: %v", err)}
	}
	if err := m.To(msg.To); err != nil {
		return Result{Ok: false, Err: fmt.Sprintf("destinatário inválido: %v", err)}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	if err := client.DialAndSend(m); err != nil {
		return Result{Ok: false, Err: err.Error()}
	}
	return Result{Ok: true}
}
