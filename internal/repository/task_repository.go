package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"home-organizer/internal/model"
	"home-organizer/internal/schedule"
)

// TaskRepository handles tasks and their recurrence rules.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateWithRule stores a task together with its rule. Tasks and rules
// are born in pairs; everything after that updates them independently.
func (r *TaskRepository) CreateWithRule(ctx context.Context, task *model.Task, rule *model.RecurrenceRule) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		rule.TaskID = task.ID
		return tx.Create(rule).Error
	})
	if err != nil {
		return fmt.Errorf("create task with rule: %w", err)
	}
	return nil
}

// ListActiveWithRules returns every active task joined with its rule.
// A task without a rule never produces occurrences and is excluded.
func (r *TaskRepository) ListActiveWithRules(ctx context.Context) ([]schedule.TaskWithRule, error) {
	db := r.db.WithContext(ctx)

	var tasks []model.Task
	if err := db.Where("active = ?", true).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	var rules []model.RecurrenceRule
	if err := db.Where("task_id IN ?", ids).Find(&rules).Error; err != nil {
		return nil, err
	}
	ruleByTask := make(map[uint]model.RecurrenceRule, len(rules))
	for _, rule := range rules {
		ruleByTask[rule.TaskID] = rule
	}

	pairs := make([]schedule.TaskWithRule, 0, len(tasks))
	for _, task := range tasks {
		rule, ok := ruleByTask[task.ID]
		if !ok {
			continue
		}
		pairs = append(pairs, schedule.TaskWithRule{Task: task, Rule: rule})
	}
	return pairs, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindRuleByTask(ctx context.Context, taskID uint) (*model.RecurrenceRule, error) {
	var rule model.RecurrenceRule
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) SaveRule(ctx context.Context, rule *model.RecurrenceRule) error {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("save rule: %w", err)
	}
	return nil
}

func (r *TaskRepository) UpdateRuleEndDate(ctx context.Context, taskID uint, endDate string) error {
	if err := r.db.WithContext(ctx).Model(&model.RecurrenceRule{}).Where("task_id = ?", taskID).
		Update("end_date", endDate).Error; err != nil {
		return fmt.Errorf("update rule end date: %w", err)
	}
	return nil
}

// SetActive flips the task's soft-delete flag. Instances are never
// touched; history stays queryable.
func (r *TaskRepository) SetActive(ctx context.Context, taskID uint, active bool) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("active", active).Error; err != nil {
		return fmt.Errorf("set task active: %w", err)
	}
	return nil
}
