package planner

// Priority prioridade de uma atividade.
type Priority string

const (
	PriorityBaixa Priority = "baixa"
	PriorityMedia Priority = "media"
	PriorityAlta  Priority = "alta"
)

// ValidPriority prioridade conhecida.
func ValidPriority(p Priority) bool {
	return p == PriorityBaixa || p == PriorityMedia || p == PriorityAlta
}

// PlanColor cor do plano no quadro.
type PlanColor string

var planColors = []PlanColor{"green", "blue", "purple", "pink", "red", "orange", "gray"}

// NormalizeColor cor válida ou o verde padrão.
func NormalizeColor(c PlanColor) PlanColor {
	for _, known := range planColors {
		if c == known {
			return c
		}
	}
	return "green"
}

// Plan um quadro de atividades.
type Plan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     PlanColor `json:"color"`
	Pinned    bool      `json:"pinned"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// Task uma atividade atribuída a um comprador.
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	PlanID        string   `json:"planId,omitempty"`
	AssigneeName  string   `json:"assigneeName"`
	AssigneeEmail string   `json:"assigneeEmail,omitempty"`
	DueDate       string   `json:"dueDate,omitempty"` // YYYY-MM-DD
	Priority      Priority `json:"priority"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	CompletedAt   string   `json:"completedAt,omitempty"`
}

// Assignee comprador conhecido do planner, com o e-mail de notificação.
type Assignee struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	UpdatedAt string `json:"updatedAt"`
}
