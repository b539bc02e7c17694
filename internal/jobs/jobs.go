// Package jobs tarefas agendadas do dashboard. Hoje só o resumo diário de
// itens atrasados por e-mail.
package jobs

import (
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/config"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/mailer"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/report"
)

// Limite de linhas no corpo do resumo; o restante vira uma linha de "mais N".
const digestMaxItens = 50

// Scheduler dono do cron do processo.
type Scheduler struct {
	cron    *cron.Cron
	service *report.Service
	cfg     config.JobsConfig
}

// NewScheduler cria o agendador sobre o serviço de relatórios.
func NewScheduler(service *report.Service, cfg config.JobsConfig) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		cfg:     cfg,
	}
}

// Start registra os jobs habilitados e inicia o cron. Sem jobs habilitados
// não inicia nada.
func (s *Scheduler) Start() error {
	if !s.cfg.DigestEnabled || s.cfg.DigestTo == "" {
		return nil
	}
	if !mailer.Configured() {
		log.Printf("[jobs] resumo diário habilitado mas SMTP não configurado; job não registrado")
		return nil
	}

	spec := s.cfg.DigestCron
	if spec == "" {
		spec = "0 7 * * 1-5"
	}
	if _, err := s.cron.AddFunc(spec, s.runDigest); err != nil {
		return fmt.Errorf("registrar resumo diário: %w", err)
	}

	s.cron.Start()
	log.Printf("[jobs] resumo diário agendado (%s) para %s", spec, s.cfg.DigestTo)
	return nil
}

// Stop para o cron; jobs em execução terminam.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) runDigest() {
	items, err := s.service.DelayedItems(0)
	if err != nil {
		log.Printf("[jobs] resumo diário: carregar itens atrasados: %v", err)
		return
	}
	if len(items) == 0 {
		log.Printf("[jobs] resumo diário: nenhum item atrasado, e-mail não enviado")
		return
	}

	result := mailer.Send(mailer.Message{
		To:      s.cfg.DigestTo,
		Subject: fmt.Sprintf("[Suprimentos] %d item(ns) com necessidade vencida", len(items)),
		Text:    buildDigestText(items),
	})
	if !result.Ok {
		log.Printf("[jobs] resumo diário: envio falhou: %s", result.Err)
		return
	}
	log.Printf("[jobs] resumo diário enviado: %d item(ns)", len(items))
}

func buildDigestText(items []report.SolicitacaoItemComSla) string {
	var b strings.Builder
	b.WriteString("Itens com data de necessidade vencida e ainda em aberto:\n\n")

	shown := items
	if len(shown) > digestMaxItens {
		shown = shown[:digestMaxItens]
	}
	for _, item := range shown {
		descricao := item.DescricaoItem
		if descricao == "" {
			descricao = item.CodigoItem
		}
		fmt.Fprintf(&b, "- %s | %s | %s | %d dia(s) de atraso\n",
			item.CodigoSolicitacao, descricao, item.NomeComprador, item.Dias)
	}
	if rest := len(items) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "... e mais %d item(ns).\n", rest)
	}

	b.WriteString("\nMensagem automática do dashboard de suprimentos.\n")
	return b.String()
}
