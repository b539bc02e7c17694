package planner

import (
	"path/filepath"
	"testing"
	"time"
)

func relogioFixo() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func novoStoreTeste(t *testing.T) *Store {
	t.Helper()
	return NewStoreWithClock(t.TempDir(), relogioFixo)
}

// TestReadSemeiaPlanoPadrao diretório vazio nasce com o plano padrão fixado.
func TestReadSemeiaPlanoPadrao(t *testing.T) {
	s := novoStoreTeste(t)

	data, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Plans) != 1 {
		t.Fatalf("planos: want=1 got=%+v", data.Plans)
	}
	plan := data.Plans[0]
	if plan.ID != DefaultPlanID || plan.Name != "Atividades de Compras" || !plan.Pinned {
		t.Errorf("plano padrão: got=%+v", plan)
	}
	if plan.Color != "green" {
		t.Errorf("cor do plano padrão: got=%q", plan.Color)
	}
	if plan.CreatedAt != "2026-03-10T12:00:00Z" {
		t.Errorf("createdAt: got=%q", plan.CreatedAt)
	}
	if len(data.Tasks) != 0 || len(data.Assignees) != 0 {
		t.Errorf("estado inicial: got=%+v", data)
	}
}

// TestReadNormalizaPlanos planos gravados por versões antigas ganham nome,
// cor e timestamps válidos, e o plano padrão volta à frente quando falta.
func TestReadNormalizaPlanos(t *testing.T) {
	s := novoStoreTeste(t)
	if err := s.SavePlans([]Plan{{ID: "p1", Name: "  Obras   Civis ", Color: "magenta"}}); err != nil {
		t.Fatal(err)
	}

	data, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Plans) != 2 {
		t.Fatalf("planos: want=2 got=%+v", data.Plans)
	}
	if data.Plans[0].ID != DefaultPlanID {
		t.Errorf("plano padrão deveria vir primeiro: got=%+v", data.Plans[0])
	}
	p1 := data.Plans[1]
	if p1.Name != "Obras Civis" {
		t.Errorf("nome normalizado: got=%q", p1.Name)
	}
	if p1.Color != "green" {
		t.Errorf("cor desconhecida cai no verde: got=%q", p1.Color)
	}
	if p1.CreatedAt == "" || p1.UpdatedAt == "" {
		t.Errorf("timestamps preenchidos: got=%+v", p1)
	}
}

// TestReadReligaTarefasOrfas tarefa apontando para plano inexistente volta
// para o plano padrão, persistida.
func TestReadReligaTarefasOrfas(t *testing.T) {
	s := novoStoreTeste(t)
	tasks := []Task{
		{ID: "t1", Title: "Cotar parafusos", PlanID: "nao-existe", Priority: PriorityMedia},
		{ID: "t2", Title: "Revisar contrato", PlanID: "", Priority: PriorityAlta},
	}
	if err := s.SaveTasks(tasks); err != nil {
		t.Fatal(err)
	}

	data, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range data.Tasks {
		if task.PlanID != DefaultPlanID {
			t.Errorf("tarefa %s: want planId=%q got=%q", task.ID, DefaultPlanID, task.PlanID)
		}
	}

	// A correção fica gravada: releitura direta do arquivo traz o plano certo.
	relido := readJSONFile(filepath.Join(s.plannerDir(), tasksFileName), []Task{})
	if len(relido) != 2 || relido[0].PlanID != DefaultPlanID {
		t.Errorf("tarefas persistidas: got=%+v", relido)
	}
}

// TestUpsertAssignee substitui pelo nome sem caixa e mantém a lista ordenada.
func TestUpsertAssignee(t *testing.T) {
	s := novoStoreTeste(t)

	if _, err := s.UpsertAssignee(Assignee{Name: "Maria Silva", Email: "maria@empresa.com.br"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertAssignee(Assignee{Name: "Ana Costa", Email: "ana@empresa.com.br"}); err != nil {
		t.Fatal(err)
	}

	lista, err := s.UpsertAssignee(Assignee{Name: "MARIA SILVA", Email: "maria.silva@empresa.com.br"})
	if err != nil {
		t.Fatal(err)
	}

	if len(lista) != 2 {
		t.Fatalf("compradores: want=2 got=%+v", lista)
	}
	if lista[0].Name != "Ana Costa" {
		t.Errorf("ordenação: got=%+v", lista)
	}
	if lista[1].Name != "MARIA SILVA" || lista[1].Email != "maria.silva@empresa.com.br" {
		t.Errorf("substituição sem caixa: got=%+v", lista[1])
	}
}

// TestDeleteAssignee remove pelo nome sem caixa.
func TestDeleteAssignee(t *testing.T) {
	s := novoStoreTeste(t)
	if _, err := s.UpsertAssignee(Assignee{Name: "Maria Silva"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertAssignee(Assignee{Name: "Ana Costa"}); err != nil {
		t.Fatal(err)
	}

	lista, err := s.DeleteAssignee("maria silva")
	if err != nil {
		t.Fatal(err)
	}
	if len(lista) != 1 || lista[0].Name != "Ana Costa" {
		t.Errorf("remoção: got=%+v", lista)
	}
}

func TestValidPriority(t *testing.T) {
	t.Parallel()

	for _, p := range []Priority{PriorityBaixa, PriorityMedia, PriorityAlta} {
		if !ValidPriority(p) {
			t.Fatalf("ValidPriority(%q): want=true", p)
		}
	}
	if ValidPriority("urgente") || ValidPriority("") {
		t.Fatalf("prioridade desconhecida deveria ser inválida")
	}
}

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	if got := NormalizeColor("blue"); got != "blue" {
		t.Fatalf("cor conhecida: got=%q", got)
	}
	if got := NormalizeColor("magenta"); got != "green" {
		t.Fatalf("cor desconhecida: got=%q", got)
	}
	if got := NormalizeColor(""); got != "green" {
		t.Fatalf("cor vazia: got=%q", got)
	}
}
