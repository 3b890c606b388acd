package submissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for submissions.
type Repository interface {
	Create(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context) ([]Submission, error)
	ListSince(ctx context.Context, since time.Time) ([]Submission, error)
	MarkOnboarded(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, s *Submission) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("failed to persist submission: %w", err)
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var s Submission
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load submission %s: %w", id, err)
	}
	return &s, nil
}

// List returns all submissions newest first.
func (r *gormRepository) List(ctx context.Context) ([]Submission, error) {
	var out []Submission
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return out, nil
}

func (r *gormRepository) ListSince(ctx context.Context, since time.Time) ([]Submission, error) {
	var out []Submission
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions since %s: %w", since.Format(time.RFC3339), err)
	}
	return out, nil
}

// MarkOnboarded flips the flag. Marking an already onboarded submission
// is a no-op success; only an unknown id is an error.
func (r *gormRepository) MarkOnboarded(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("onboarded", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark submission %s onboarded: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish missing from already-onboarded
		var count int64
		if err := r.db.WithContext(ctx).Model(&Submission{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check submission %s: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}
