package service

import (
	"context"
	"fmt"

	"home-organizer/internal/model"
	"home-organizer/internal/repository"
	"home-organizer/internal/schedule"
)

// MonthRef identifies a requested month.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DateRange is the resolved inclusive window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MonthData is the payload for one resolved month: the active people and
// every occurrence the rules produce inside the window.
type MonthData struct {
	Month       MonthRef              `json:"month"`
	Range       DateRange             `json:"range"`
	People      []model.Person        `json:"people"`
	Occurrences []schedule.Occurrence `json:"occurrences"`
}

// PlannerService fetches a fresh record-store snapshot per call and runs
// the occurrence resolver over it. It holds no cross-call state.
type PlannerService struct {
	taskRepo     *repository.TaskRepository
	personRepo   *repository.PersonRepository
	instanceRepo *repository.InstanceRepository
}

func NewPlannerService(taskRepo *repository.TaskRepository, personRepo *repository.PersonRepository, instanceRepo *repository.InstanceRepository) *PlannerService {
	return &PlannerService{taskRepo: taskRepo, personRepo: personRepo, instanceRepo: instanceRepo}
}

// MonthData resolves the full calendar month for year/month.
func (s *PlannerService) MonthData(ctx context.Context, year, month int) (*MonthData, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", ErrValidation, month)
	}
	window := schedule.MonthWindow(year, month)
	start := schedule.FormatDate(window.Start)
	end := schedule.FormatDate(window.End)

	people, err := s.personRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	pairs, err := s.taskRepo.ListActiveWithRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	overrides, err := s.instanceRepo.ListInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}

	occurrences := schedule.Resolve(window, schedule.Snapshot{
		People:    people,
		Tasks:     pairs,
		Overrides: overrides,
	})

	return &MonthData{
		Month:       MonthRef{Year: year, Month: month},
		Range:       DateRange{Start: start, End: end},
		People:      people,
		Occurrences: occurrences,
	}, nil
}
