// Package planner quadro de atividades da equipe de compras, persistido em
// arquivos JSON sob dados/planner/.
package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultPlanID identificador do plano padrão, que nunca é excluído.
const DefaultPlanID = "default"

const (
	plannerDirName    = "planner"
	tasksFileName     = "tasks.json"
	assigneesFileName = "assignees.json"
	plansFileName     = "plans.json"
)

// Store persistência do planner. Cada leitura passa pela inicialização, que
// garante o plano padrão e religa tarefas órfãs a ele.
type Store struct {
	dataDir string
	now     func() time.Time
	mu      sync.Mutex
}

// NewStore cria o store sobre o diretório dados/.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir, now: time.Now}
}

// NewStoreWithClock variante com relógio injetado, usada nos testes.
func NewStoreWithClock(dataDir string, now func() time.Time) *Store {
	return &Store{dataDir: dataDir, now: now}
}

func (s *Store) plannerDir() string {
	return filepath.Join(s.dataDir, plannerDirName)
}

func (s *Store) nowISO() string {
	return s.now().UTC().Format(time.RFC3339)
}

func readJSONFile[T any](path string, fallback T) T {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback
	}
	return value
}

func writeJSONFile(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("criar diretório do planner: %w", err)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func normalizePlanName(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func normalizeAssigneeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Store) defaultPlan(nowISO string) Plan {
	return Plan{
		ID:        DefaultPlanID,
		Name:      "Atividades de Compras",
		Color:     "green",
		Pinned:    true,
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
	}
}

// Data estado completo do planner.
type Data struct {
	Tasks     []Task
	Assignees []Assignee
	Plans     []Plan
}

// ensureInitialized lê os três arquivos, semeia o plano padrão quando não há
// planos e normaliza planos e tarefas gravadas por versões antigas.
func (s *Store) ensureInitialized() (Data, error) {
	dir := s.plannerDir()
	tasks := readJSONFile(filepath.Join(dir, tasksFileName), []Task{})
	assignees := readJSONFile(filepath.Join(dir, assigneesFileName), []Assignee{})
	plans := readJSONFile(filepath.Join(dir, plansFileName), []Plan{})

	nowISO := s.nowISO()

	if len(plans) == 0 {
		plans = []Plan{s.defaultPlan(nowISO)}
		if err := writeJSONFile(filepath.Join(dir, plansFileName), plans); err != nil {
			return Data{}, err
		}
	} else {
		changed := false
		for i, plan := range plans {
			next := plan
			next.Name = normalizePlanName(plan.Name)
			if next.Name == "" {
				next.Name = "Sem nome"
			}
			next.Color = NormalizeColor(plan.Color)
			if next.CreatedAt == "" {
				next.CreatedAt = nowISO
			}
			if next.UpdatedAt == "" {
				next.UpdatedAt = nowISO
			}
			if next != plan {
				plans[i] = next
				changed = true
			}
		}

		hasDefault := false
		for _, plan := range plans {
			if plan.ID == DefaultPlanID {
				hasDefault = true
				break
			}
		}
		if !hasDefault {
			plans = append([]Plan{s.defaultPlan(nowISO)}, plans...)
			changed = true
		}

		if changed {
			if err := writeJSONFile(filepath.Join(dir, plansFileName), plans); err != nil {
				return Data{}, err
			}
		}
	}

	planIDs := make(map[string]struct{}, len(plans))
	for _, plan := range plans {
		planIDs[plan.ID] = struct{}{}
	}

	tasksChanged := false
	for i, task := range tasks {
		if _, ok := planIDs[task.PlanID]; task.PlanID == "" || !ok {
			tasks[i].PlanID = DefaultPlanID
			tasksChanged = true
		}
	}
	if tasksChanged {
		if err := writeJSONFile(filepath.Join(dir, tasksFileName), tasks); err != nil {
			return Data{}, err
		}
	}

	return Data{Tasks: tasks, Assignees: assignees, Plans: plans}, nil
}

// Read estado completo, já inicializado.
func (s *Store) Read() (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureInitialized()
}

// ListPlans planos existentes.
func (s *Store) ListPlans() ([]Plan, error) {
	data, err := s.Read()
	if err != nil {
		return nil, err
	}
	return data.Plans, nil
}

// ListTasks atividades existentes.
func (s *Store) ListTasks() ([]Task, error) {
	data, err := s.Read()
	if err != nil {
		return nil, err
	}
	return data.Tasks, nil
}

// ListAssignees compradores conhecidos.
func (s *Store) ListAssignees() ([]Assignee, error) {
	data, err := s.Read()
	if err != nil {
		return nil, err
	}
	return data.Assignees, nil
}

// SaveTasks grava a lista completa de atividades.
func (s *Store) SaveTasks(tasks []Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(filepath.Join(s.plannerDir(), tasksFileName), tasks)
}

// SavePlans grava a lista completa de planos.
func (s *Store) SavePlans(plans []Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(filepath.Join(s.plannerDir(), plansFileName), plans)
}

// SaveAssignees grava a lista completa de compradores.
func (s *Store) SaveAssignees(assignees []Assignee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(filepath.Join(s.plannerDir(), assigneesFileName), assignees)
}

func sortAssignees(assignees []Assignee) {
	sort.SliceStable(assignees, func(i, j int) bool {
		return strings.ToLower(assignees[i].Name) < strings.ToLower(assignees[j].Name)
	})
}

// UpsertAssignee insere ou substitui o comprador pelo nome (sem caixa) e
// devolve a lista ordenada.
func (s *Store) UpsertAssignee(assignee Assignee) ([]Assignee, error) {
	data, err := s.Read()
	if err != nil {
		return nil, err
	}

	key := normalizeAssigneeKey(assignee.Name)
	next := make([]Assignee, 0, len(data.Assignees)+1)
	for _, existing := range data.Assignees {
		if normalizeAssigneeKey(existing.Name) != key {
			next = append(next, existing)
		}
	}
	next = append(next, Assignee{
		Name:      strings.TrimSpace(assignee.Name),
		Email:     strings.TrimSpace(assignee.Email),
		UpdatedAt: assignee.UpdatedAt,
	})
	sortAssignees(next)

	if err := s.SaveAssignees(next); err != nil {
		return nil, err
	}
	return next, nil
}

// DeleteAssignee remove o comprador pelo nome e devolve a lista restante.
func (s *Store) DeleteAssignee(name string) ([]Assignee, error) {
	data, err := s.Read()
	if err != nil {
		return nil, err
	}

	key := normalizeAssigneeKey(name)
	next := make([]Assignee, 0, len(data.Assignees))
	for _, existing := range data.Assignees {
		if normalizeAssigneeKey(existing.Name) != key {
			next = append(next, existing)
		}
	}

	if err := s.SaveAssignees(next); err != nil {
		return nil, err
	}
	return next, nil
}

// NowISO instante corrente no formato gravado nos arquivos.
func (s *Store) NowISO() string {
	return s.nowISO()
}
