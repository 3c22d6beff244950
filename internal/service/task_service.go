package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"home-organizer/internal/model"
	"home-organizer/internal/repository"
	"home-organizer/internal/schedule"
)

// RecurrenceInput is the rule shape accepted from any caller, structured
// or parsed from free text. Absent fields fall back to the documented
// defaults: weekly, interval 1, start today.
type RecurrenceInput struct {
	Freq       string
	Interval   int
	ByWeekday  string
	ByMonthday string
	StartDate  string
	EndDate    *string
	Timezone   string
}

// TaskInput carries everything needed to create a chore.
type TaskInput struct {
	Title      string
	Notes      string
	AssigneeID *uint
	Color      string
	Category   string
	Priority   string
	Recurrence RecurrenceInput
}

// TaskPatch updates individual task fields; nil means keep the stored
// value. Recurrence, when set, overwrites the rule's fields the same way.
type TaskPatch struct {
	Title      *string
	Notes      *string
	AssigneeID *uint
	Color      *string
	Category   *string
	Priority   *string
	Active     *bool
	Recurrence *RecurrencePatch
}

// RecurrencePatch mirrors TaskPatch for the rule.
type RecurrencePatch struct {
	Freq       *string
	Interval   *int
	ByWeekday  *string
	ByMonthday *string
	StartDate  *string
	EndDate    *string
	Timezone   *string
}

// TaskService wraps chore mutations around the record store.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	personRepo   *repository.PersonRepository
	instanceRepo *repository.InstanceRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, personRepo *repository.PersonRepository, instanceRepo *repository.InstanceRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, personRepo: personRepo, instanceRepo: instanceRepo}
}

// CreateTask stores a new task together with its recurrence rule.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	rec := input.Recurrence
	if rec.Freq == "" {
		rec.Freq = schedule.FreqWeekly
	}
	if !schedule.ValidFreq(rec.Freq) {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrValidation, rec.Freq)
	}
	if rec.Interval < 1 {
		rec.Interval = 1
	}
	if rec.StartDate == "" {
		rec.StartDate = schedule.FormatDate(time.Now())
	} else if _, err := schedule.ParseDate(rec.StartDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if rec.EndDate != nil && *rec.EndDate != "" {
		if _, err := schedule.ParseDate(*rec.EndDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	task := model.Task{
		Title:      input.Title,
		Notes:      input.Notes,
		AssigneeID: input.AssigneeID,
		Color:      input.Color,
		Category:   input.Category,
		Priority:   input.Priority,
		Active:     true,
	}
	rule := model.RecurrenceRule{
		Freq:       rec.Freq,
		Interval:   rec.Interval,
		ByWeekday:  rec.ByWeekday,
		ByMonthday: rec.ByMonthday,
		StartDate:  rec.StartDate,
		EndDate:    rec.EndDate,
		Timezone:   rec.Timezone,
	}

	if err := s.taskRepo.CreateWithRule(ctx, &task, &rule); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask returns a task with its rule, active or not.
func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, *model.RecurrenceRule, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return nil, nil, err
	}
	rule, err := s.taskRepo.FindRuleByTask(ctx, taskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	return task, rule, nil
}

// UpdateTask overwrites the provided fields; other fields keep their
// stored values. These edits are plain record updates, not scheduling
// logic, and race under last-write-wins like every single-record write.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.AssigneeID != nil {
		task.AssigneeID = patch.AssigneeID
	}
	if patch.Color != nil {
		task.Color = *patch.Color
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Active != nil {
		task.Active = *patch.Active
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	if patch.Recurrence != nil {
		rule, err := s.taskRepo.FindRuleByTask(ctx, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return task, nil
			}
			return nil, err
		}
		applyRecurrencePatch(rule, *patch.Recurrence)
		if err := s.taskRepo.SaveRule(ctx, rule); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func applyRecurrencePatch(rule *model.RecurrenceRule, patch RecurrencePatch) {
	if patch.Freq != nil {
		rule.Freq = *patch.Freq
	}
	if patch.Interval != nil {
		rule.Interval = *patch.Interval
	}
	if patch.ByWeekday != nil {
		rule.ByWeekday = *patch.ByWeekday
	}
	if patch.ByMonthday != nil {
		rule.ByMonthday = *patch.ByMonthday
	}
	if patch.StartDate != nil {
		rule.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		rule.EndDate = patch.EndDate
	}
	if patch.Timezone != nil {
		rule.Timezone = *patch.Timezone
	}
}

// StopRecurrence truncates a rule from the given date forward: the end
// date becomes the day before. A rule already ending earlier is left
// untouched; historical occurrences are preserved either way.
func (s *TaskService) StopRecurrence(ctx context.Context, taskID uint, date string) (*model.RecurrenceRule, error) {
	rule, err := s.taskRepo.FindRuleByTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: rule for task %d", ErrNotFound, taskID)
		}
		return nil, err
	}

	newEnd, changed, err := schedule.StopEndDate(rule.EndDate, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !changed {
		return rule, nil
	}
	if err := s.taskRepo.UpdateRuleEndDate(ctx, taskID, newEnd); err != nil {
		return nil, err
	}
	rule.EndDate = &newEnd
	return rule, nil
}

// DeleteTask soft-deletes: the task stops producing occurrences while
// its instances stay in the store.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return err
	}
	return s.taskRepo.SetActive(ctx, taskID, false)
}

// SetOccurrenceStatus upserts the per-date override for a task.
func (s *TaskService) SetOccurrenceStatus(ctx context.Context, taskID uint, date, status string, notes *string) (*model.Instance, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if status != "" && status != model.StatusOpen && status != model.StatusDone {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return nil, err
	}
	return s.instanceRepo.Upsert(ctx, taskID, date, status, notes)
}
