package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"home-organizer/internal/model"
)

// PersonRepository handles household members.
type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(ctx context.Context, person *model.Person) error {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// ListActive returns people visible to the resolver (active only).
func (r *PersonRepository) ListActive(ctx context.Context) ([]model.Person, error) {
	var people []model.Person
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id uint) (*model.Person, error) {
	var person model.Person
	if err := r.db.WithContext(ctx).First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// FindActiveByName resolves an assignee name hint from the command parser.
func (r *PersonRepository) FindActiveByName(ctx context.Context, name string) (*model.Person, error) {
	var person model.Person
	if err := r.db.WithContext(ctx).Where("name = ? AND active = ?", name, true).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *PersonRepository) Save(ctx context.Context, person *model.Person) error {
	if err := r.db.WithContext(ctx).Save(person).Error; err != nil {
		return fmt.Errorf("save person: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a person; historic occurrences keep the id.
func (r *PersonRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&model.Person{}).Where("id = ?", id).
		Update("active", false).Error; err != nil {
		return fmt.Errorf("deactivate person: %w", err)
	}
	return nil
}
