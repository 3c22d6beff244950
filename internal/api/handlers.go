package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"home-organizer/internal/command"
	"home-organizer/internal/model"
	"home-organizer/internal/repository"
	"home-organizer/internal/service"
)

// Handlers bundles the services behind the REST routes.
type Handlers struct {
	planner       *service.PlannerService
	taskSvc       *service.TaskService
	personRepo    *repository.PersonRepository
	webhookSecret string
}

func NewHandlers(planner *service.PlannerService, taskSvc *service.TaskService, personRepo *repository.PersonRepository, webhookSecret string) *Handlers {
	return &Handlers{
		planner:       planner,
		taskSvc:       taskSvc,
		personRepo:    personRepo,
		webhookSecret: webhookSecret,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	api.GET("/health", h.health)
	api.GET("/month", h.month)

	api.GET("/people", h.listPeople)
	api.POST("/people", h.createPerson)
	api.PATCH("/people/:id", h.updatePerson)
	api.DELETE("/people/:id", h.deletePerson)

	api.POST("/tasks", h.createTask)
	api.GET("/tasks/:id", h.getTask)
	api.PATCH("/tasks/:id", h.updateTask)
	api.DELETE("/tasks/:id", h.deleteTask)
	api.POST("/tasks/:id/stop", h.stopTask)

	api.POST("/instances", h.upsertInstance)

	api.POST("/telegram/webhook", h.telegramWebhook)
}

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) month(c *gin.Context) {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	data, err := h.planner.MonthData(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handlers) listPeople(c *gin.Context) {
	people, err := h.personRepo.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

type personRequest struct {
	Name   *string `json:"name"`
	Color  *string `json:"color"`
	Active *bool   `json:"active"`
}

func (h *Handlers) createPerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || *req.Name == "" || req.Color == nil || *req.Color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and color are required"})
		return
	}

	person := model.Person{Name: *req.Name, Color: *req.Color, Active: true}
	if err := h.personRepo.Create(c.Request.Context(), &person); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": person.ID})
}

func (h *Handlers) updatePerson(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	person, err := h.personRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
			return
		}
		respondError(c, err)
		return
	}

	if req.Name != nil {
		person.Name = *req.Name
	}
	if req.Color != nil {
		person.Color = *req.Color
	}
	if req.Active != nil {
		person.Active = *req.Active
	}
	if err := h.personRepo.Save(c.Request.Context(), person); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) deletePerson(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.personRepo.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type recurrenceRequest struct {
	Freq       string  `json:"freq"`
	Interval   int     `json:"interval"`
	ByWeekday  string  `json:"byWeekday"`
	ByMonthday string  `json:"byMonthday"`
	StartDate  string  `json:"startDate"`
	EndDate    *string `json:"endDate"`
	Timezone   string  `json:"timezone"`
}

type createTaskRequest struct {
	Title      string             `json:"title"`
	Notes      string             `json:"notes"`
	AssigneeID *uint              `json:"assigneeId"`
	Color      string             `json:"color"`
	Category   string             `json:"category"`
	Priority   string             `json:"priority"`
	Recurrence *recurrenceRequest `json:"recurrence"`
}

func (h *Handlers) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Title == "" || req.Recurrence == nil || req.Recurrence.Freq == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and recurrence are required"})
		return
	}

	task, err := h.taskSvc.CreateTask(c.Request.Context(), service.TaskInput{
		Title:      req.Title,
		Notes:      req.Notes,
		AssigneeID: req.AssigneeID,
		Color:      req.Color,
		Category:   req.Category,
		Priority:   req.Priority,
		Recurrence: service.RecurrenceInput{
			Freq:       req.Recurrence.Freq,
			Interval:   req.Recurrence.Interval,
			ByWeekday:  req.Recurrence.ByWeekday,
			ByMonthday: req.Recurrence.ByMonthday,
			StartDate:  req.Recurrence.StartDate,
			EndDate:    req.Recurrence.EndDate,
			Timezone:   req.Recurrence.Timezone,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": task.ID})
}

func (h *Handlers) getTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	task, rule, err := h.taskSvc.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task, "rule": rule})
}

type updateTaskRequest struct {
	Title      *string `json:"title"`
	Notes      *string `json:"notes"`
	AssigneeID *uint   `json:"assigneeId"`
	Color      *string `json:"color"`
	Category   *string `json:"category"`
	Priority   *string `json:"priority"`
	Active     *bool   `json:"active"`
	Recurrence *struct {
		Freq       *string `json:"freq"`
		Interval   *int    `json:"interval"`
		ByWeekday  *string `json:"byWeekday"`
		ByMonthday *string `json:"byMonthday"`
		StartDate  *string `json:"startDate"`
		EndDate    *string `json:"endDate"`
		Timezone   *string `json:"timezone"`
	} `json:"recurrence"`
}

func (h *Handlers) updateTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	patch := service.TaskPatch{
		Title:      req.Title,
		Notes:      req.Notes,
		AssigneeID: req.AssigneeID,
		Color:      req.Color,
		Category:   req.Category,
		Priority:   req.Priority,
		Active:     req.Active,
	}
	if req.Recurrence != nil {
		patch.Recurrence = &service.RecurrencePatch{
			Freq:       req.Recurrence.Freq,
			Interval:   req.Recurrence.Interval,
			ByWeekday:  req.Recurrence.ByWeekday,
			ByMonthday: req.Recurrence.ByMonthday,
			StartDate:  req.Recurrence.StartDate,
			EndDate:    req.Recurrence.EndDate,
			Timezone:   req.Recurrence.Timezone,
		}
	}

	if _, err := h.taskSvc.UpdateTask(c.Request.Context(), id, patch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) deleteTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.taskSvc.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) stopTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	if _, err := h.taskSvc.StopRecurrence(c.Request.Context(), id, req.Date); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type instanceRequest struct {
	TaskID uint    `json:"taskId"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *Handlers) upsertInstance(c *gin.Context) {
	var req instanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskID == 0 || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId and date are required"})
		return
	}
	if _, err := h.taskSvc.SetOccurrenceStatus(c.Request.Context(), req.TaskID, req.Date, req.Status, req.Notes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type webhookRequest struct {
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// telegramWebhook accepts Telegram push updates as an alternative to the
// polling bot. Non-/chore messages are acknowledged and ignored so
// Telegram does not retry them.
func (h *Handlers) telegramWebhook(c *gin.Context) {
	if h.webhookSecret != "" {
		if c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != h.webhookSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
			return
		}
	}

	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true})
		return
	}
	draft := command.Parse(req.Message.Text)
	if draft == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true})
		return
	}

	input := service.TaskInput{
		Title: draft.Title,
		Notes: req.Message.Text,
		Recurrence: service.RecurrenceInput{
			Freq:       draft.Freq,
			Interval:   draft.Interval,
			ByWeekday:  draft.ByWeekday,
			ByMonthday: draft.ByMonthday,
		},
	}
	if draft.Assignee != "" {
		person, err := h.personRepo.FindActiveByName(c.Request.Context(), draft.Assignee)
		if err == nil {
			input.AssigneeID = &person.ID
		}
	}

	if _, err := h.taskSvc.CreateTask(c.Request.Context(), input); err != nil {
		log.Printf("webhook chore: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return 0, false
	}
	return uint(id64), true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return value
}
