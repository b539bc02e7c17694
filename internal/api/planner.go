package api

import (
	"net/http"
	"net/mail"
	"regexp"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/mailer"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/planner"
)

var dueDateQueryPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func validEmail(value string) bool {
	_, err := mail.ParseAddress(value)
	return err == nil
}

// resolvePlanID plano existente ou o plano padrão.
func (h *Handler) resolvePlanID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return planner.DefaultPlanID, nil
	}
	plans, err := h.planner.ListPlans()
	if err != nil {
		return "", err
	}
	for _, plan := range plans {
		if plan.ID == raw {
			return raw, nil
		}
	}
	return planner.DefaultPlanID, nil
}

// ListPlannerTasks lista as atividades
// GET /api/planner/tasks
func (h *Handler) ListPlannerTasks(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	tasks, err := h.planner.ListTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": tasks})
}

type createTaskRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	PlanID        string `json:"planId"`
	AssigneeName  string `json:"assigneeName"`
	AssigneeEmail string `json:"assigneeEmail"`
	DueDate       string `json:"dueDate"`
	Priority      string `json:"priority"`
	NotifyEmail   *bool  `json:"notifyEmail"`
}

func (r *createTaskRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.AssigneeName = strings.TrimSpace(r.AssigneeName)
	r.AssigneeEmail = strings.TrimSpace(r.AssigneeEmail)
	r.DueDate = strings.TrimSpace(r.DueDate)

	if r.Title == "" || len(r.Title) > 200 {
		return "Título inválido."
	}
	if len(r.Description) > 5000 {
		return "Descrição longa demais."
	}
	if r.AssigneeName == "" || len(r.AssigneeName) > 120 {
		return "Nome do comprador inválido."
	}
	if r.AssigneeEmail != "" && !validEmail(r.AssigneeEmail) {
		return "E-mail inválido."
	}
	if r.DueDate != "" && !dueDateQueryPattern.MatchString(r.DueDate) {
		return "Prazo inválido."
	}
	if r.Priority != "" && !planner.ValidPriority(planner.Priority(r.Priority)) {
		return "Prioridade inválida."
	}
	return ""
}

// CreatePlannerTask cria uma atividade e notifica o comprador
// POST /api/planner/tasks
func (h *Handler) CreatePlannerTask(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
		return
	}

	planID, err := h.resolvePlanID(req.PlanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	priority := planner.Priority(req.Priority)
	if priority == "" {
		priority = planner.PriorityMedia
	}

	nowISO := h.planner.NowISO()
	task := planner.Task{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		PlanID:        planID,
		AssigneeName:  req.AssigneeName,
		AssigneeEmail: req.AssigneeEmail,
		DueDate:       req.DueDate,
		Priority:      priority,
		CreatedAt:     nowISO,
		UpdatedAt:     nowISO,
	}

	tasks, err := h.planner.ListTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	tasks = append(tasks, task)
	if err := h.planner.SaveTasks(tasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if task.AssigneeEmail != "" {
		if _, err := h.planner.UpsertAssignee(planner.Assignee{Name: task.AssigneeName, Email: task.AssigneeEmail, UpdatedAt: nowISO}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	notify := req.NotifyEmail == nil || *req.NotifyEmail
	var email *mailer.Result
	if notify && task.AssigneeEmail != "" {
		result := planner.NotifyTask(task, requestOrigin(c), planner.NotifyCreated)
		email = &result
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": task, "email": email})
}

type updateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	PlanID        *string `json:"planId"`
	AssigneeName  *string `json:"assigneeName"`
	AssigneeEmail *string `json:"assigneeEmail"`
	DueDate       *string `json:"dueDate"`
	Priority      *string `json:"priority"`
	Completed     *bool   `json:"completed"`
	NotifyEmail   *bool   `json:"notifyEmail"`
}

func (h *Handler) applyTaskPatch(task planner.Task, patch updateTaskRequest, nowISO string) (planner.Task, string) {
	next := task
	next.UpdatedAt = nowISO

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" || len(title) > 200 {
			return task, "Título inválido."
		}
		next.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if len(description) > 5000 {
			return task, "Descrição longa demais."
		}
		next.Description = description
	}
	if patch.PlanID != nil {
		planID, err := h.resolvePlanID(*patch.PlanID)
		if err != nil {
			return task, err.Error()
		}
		next.PlanID = planID
	}
	if patch.AssigneeName != nil {
		name := strings.TrimSpace(*patch.AssigneeName)
		if name == "" || len(name) > 120 {
			return task, "Nome do comprador inválido."
		}
		next.AssigneeName = name
	}
	if patch.AssigneeEmail != nil {
		email := strings.TrimSpace(*patch.AssigneeEmail)
		if email != "" && !validEmail(email) {
			return task, "E-mail inválido."
		}
		next.AssigneeEmail = email
	}
	if patch.DueDate != nil {
		dueDate := strings.TrimSpace(*patch.DueDate)
		if dueDate != "" && !dueDateQueryPattern.MatchString(dueDate) {
			return task, "Prazo inválido."
		}
		next.DueDate = dueDate
	}
	if patch.Priority != nil {
		priority := planner.Priority(*patch.Priority)
		if !planner.ValidPriority(priority) {
			return task, "Prioridade inválida."
		}
		next.Priority = priority
	}
	if patch.Completed != nil {
		if *patch.Completed {
			next.CompletedAt = nowISO
		} else {
			next.CompletedAt = ""
		}
	}
	return next, ""
}

// UpdatePlannerTask altera uma atividade e notifica quando pedido
// PATCH /api/planner/tasks/:id
func (h *Handler) UpdatePlannerTask(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	id := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
		return
	}

	tasks, err := h.planner.ListTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	index := -1
	for i, task := range tasks {
		if task.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Atividade não encontrada."})
		return
	}

	nowISO := h.planner.NowISO()
	next, msg := h.applyTaskPatch(tasks[index], req, nowISO)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
		return
	}

	tasks[index] = next
	if err := h.planner.SaveTasks(tasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if next.AssigneeEmail != "" {
		if _, err := h.planner.UpsertAssignee(planner.Assignee{Name: next.AssigneeName, Email: next.AssigneeEmail, UpdatedAt: nowISO}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	var email *mailer.Result
	if req.NotifyEmail != nil && *req.NotifyEmail && next.AssigneeEmail != "" {
		result := planner.NotifyTask(next, requestOrigin(c), planner.NotifyUpdated)
		email = &result
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "task": next, "email": email})
}

// DeletePlannerTask remove uma atividade
// DELETE /api/planner/tasks/:id
func (h *Handler) DeletePlannerTask(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	id := c.Param("id")

	tasks, err := h.planner.ListTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	next := make([]planner.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			next = append(next, task)
		}
	}
	if len(next) == len(tasks) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Atividade não encontrada."})
		return
	}

	if err := h.planner.SaveTasks(next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListPlannerPlans lista os planos
// GET /api/planner/plans
func (h *Handler) ListPlannerPlans(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	plans, err := h.planner.ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plans": plans})
}

type createPlanRequest struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Pinned *bool  `json:"pinned"`
}

// CreatePlannerPlan cria um plano
// POST /api/planner/plans
func (h *Handler) CreatePlannerPlan(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 120 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Nome inválido."})
		return
	}

	pinned := true
	if req.Pinned != nil {
		pinned = *req.Pinned
	}

	nowISO := h.planner.NowISO()
	plan := planner.Plan{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     planner.NormalizeColor(planner.PlanColor(req.Color)),
		Pinned:    pinned,
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
	}

	plans, err := h.planner.ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	plans = append(plans, plan)
	if err := h.planner.SavePlans(plans); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "plan": plan})
}

type updatePlanRequest struct {
	Name   *string `json:"name"`
	Color  *string `json:"color"`
	Pinned *bool   `json:"pinned"`
}

// UpdatePlannerPlan altera um plano
// PATCH /api/planner/plans/:id
func (h *Handler) UpdatePlannerPlan(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	id := c.Param("id")

	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
		return
	}

	plans, err := h.planner.ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	index := -1
	for i, plan := range plans {
		if plan.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Plano não encontrado."})
		return
	}

	next := plans[index]
	next.UpdatedAt = h.planner.NowISO()
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 120 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Nome inválido."})
			return
		}
		next.Name = name
	}
	if req.Color != nil {
		next.Color = planner.NormalizeColor(planner.PlanColor(*req.Color))
	}
	if req.Pinned != nil {
		next.Pinned = *req.Pinned
	}

	plans[index] = next
	if err := h.planner.SavePlans(plans); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": next})
}

// DeletePlannerPlan remove um plano e religa as atividades dele ao padrão
// DELETE /api/planner/plans/:id
func (h *Handler) DeletePlannerPlan(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	id := c.Param("id")

	if id == planner.DefaultPlanID {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Não é possível excluir o plano padrão."})
		return
	}

	plans, err := h.planner.ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	nextPlans := make([]planner.Plan, 0, len(plans))
	for _, plan := range plans {
		if plan.ID != id {
			nextPlans = append(nextPlans, plan)
		}
	}
	if len(nextPlans) == len(plans) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Plano não encontrado."})
		return
	}

	tasks, err := h.planner.ListTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	for i, task := range tasks {
		if task.PlanID == id {
			tasks[i].PlanID = planner.DefaultPlanID
		}
	}
	if err := h.planner.SaveTasks(tasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.planner.SavePlans(nextPlans); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListPlannerAssignees lista os compradores do planner
// GET /api/planner/assignees
func (h *Handler) ListPlannerAssignees(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	assignees, err := h.planner.ListAssignees()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignees": assignees})
}

type replaceAssigneesRequest struct {
	Assignees []struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"assignees"`
}

// ReplacePlannerAssignees substitui a lista de compradores
// PUT /api/planner/assignees
func (h *Handler) ReplacePlannerAssignees(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	var req replaceAssigneesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Assignees) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
		return
	}

	nowISO := h.planner.NowISO()
	normalized := make([]planner.Assignee, 0, len(req.Assignees))
	for _, assignee := range req.Assignees {
		name := strings.TrimSpace(assignee.Name)
		email := strings.TrimSpace(assignee.Email)
		if name == "" || len(name) > 120 || !validEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Payload inválido."})
			return
		}
		normalized = append(normalized, planner.Assignee{Name: name, Email: email, UpdatedAt: nowISO})
	}
	sortAssigneesByName(normalized)

	if err := h.planner.SaveAssignees(normalized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignees": normalized})
}

func sortAssigneesByName(assignees []planner.Assignee) {
	sort.SliceStable(assignees, func(i, j int) bool {
		return strings.ToLower(assignees[i].Name) < strings.ToLower(assignees[j].Name)
	})
}

// DeletePlannerAssignee remove um comprador pelo nome
// DELETE /api/planner/assignees?name=...
func (h *Handler) DeletePlannerAssignee(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Parâmetro 'name' é obrigatório."})
		return
	}

	assignees, err := h.planner.DeleteAssignee(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignees": assignees})
}
