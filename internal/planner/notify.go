package planner

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/mailer"
)

// NotifyKind tipo de notificação da atividade.
type NotifyKind string

const (
	NotifyCreated NotifyKind = "created"
	NotifyUpdated NotifyKind = "updated"
)

var dueDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

func formatDueDate(value string) string {
	if value == "" {
		return "Sem data"
	}
	m := dueDatePattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
}

func formatPriority(p Priority) string {
	switch p {
	case PriorityAlta:
		return "Alta"
	case PriorityBaixa:
		return "Baixa"
	default:
		return "Média"
	}
}

func buildTaskEmailText(task Task, plannerURL string, kind NotifyKind) string {
	action := "recebeu uma nova atividade"
	if kind == NotifyUpdated {
		action = "teve uma atividade atualizada"
	}

	lines := []string{
		fmt.Sprintf("Olá, %s!", task.AssigneeName),
		"",
		fmt.Sprintf("Você %s no Planner do Suprimentos.", action),
		"",
		"Título: " + task.Title,
		"Prazo: " + formatDueDate(task.DueDate),
		"Prioridade: " + formatPriority(task.Priority),
	}
	if task.Description != "" {
		lines = append(lines, "", "Descrição:", task.Description)
	}
	lines = append(lines, "", "Acesse o Planner: "+plannerURL)
	return strings.Join(lines, "\n")
}

func buildTaskEmailHTML(task Task, plannerURL string, kind NotifyKind) string {
	action := "Nova atividade atribuída"
	intro := "Você recebeu uma nova atividade"
	if kind == NotifyUpdated {
		action = "Atividade atualizada"
		intro = "Uma atividade foi atualizada"
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: ui-sans-serif, system-ui, sans-serif; line-height: 1.4; color: #111827;">`)
	fmt.Fprintf(&b, `<h2 style="margin: 0 0 12px;">%s</h2>`, html.EscapeString(action))
	fmt.Fprintf(&b, `<p style="margin: 0 0 16px;">Olá, <strong>%s</strong>!</p>`, html.EscapeString(task.AssigneeName))
	fmt.Fprintf(&b, `<p style="margin: 0 0 16px;">%s no Planner do Suprimentos.</p>`, intro)
	b.WriteString(`<div style="border: 1px solid #e5e7eb; border-radius: 12px; padding: 16px; background: #ffffff;">`)
	fmt.Fprintf(&b, `<p style="margin: 0 0 8px;"><strong>Título:</strong> %s</p>`, html.EscapeString(task.Title))
	fmt.Fprintf(&b, `<p style="margin: 0 0 8px;"><strong>Prazo:</strong> %s</p>`, html.EscapeString(formatDueDate(task.DueDate)))
	fmt.Fprintf(&b, `<p style="margin: 0;"><strong>Prioridade:</strong> %s</p>`, html.EscapeString(formatPriority(task.Priority)))
	if task.Description != "" {
		b.WriteString(`<p style="margin: 16px 0 8px; font-weight: 600;">Descrição</p>`)
		fmt.Fprintf(&b, `<pre style="white-space: pre-wrap; background: #f6f7f9; padding: 12px; border-radius: 8px; border: 1px solid #e5e7eb;">%s</pre>`, html.EscapeString(task.Description))
	}
	fmt.Fprintf(&b, `<p style="margin: 16px 0 0;"><a href="%s" style="display: inline-block; background: #f97316; color: #ffffff; padding: 10px 14px; border-radius: 10px; text-decoration: none; font-weight: 600;">Abrir Planner</a></p>`, html.EscapeString(plannerURL))
	b.WriteString(`</div>`)
	b.WriteString(`<p style="margin: 16px 0 0; color: #6b7280; font-size: 12px;">Mensagem automática. Não responda este e-mail.</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

// NotifyTask envia o e-mail de atividade criada/atualizada para o comprador.
// Atividade sem e-mail não gera envio.
func NotifyTask(task Task, origin string, kind NotifyKind) mailer.Result {
	if task.AssigneeEmail == "" {
		return mailer.Result{Ok: false, Err: "Atividade sem e-mail do comprador."}
	}

	plannerURL := strings.TrimRight(origin, "/") + "/planner?task=" + url.QueryEscape(task.ID)
	prefix := "Nova atividade"
	if kind == NotifyUpdated {
		prefix = "Atividade atualizada"
	}

	return mailer.Send(mailer.Message{
		To:      task.AssigneeEmail,
		Subject: fmt.Sprintf("[Planner] %s: %s", prefix, task.Title),
		Text:    buildTaskEmailText(task, plannerURL, kind),
		HTML:    buildTaskEmailHTML(task, plannerURL, kind),
	})
}
