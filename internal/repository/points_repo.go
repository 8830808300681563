package repository

import (
	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"gorm.io/gorm"
)

// PageQuery is a capability-tagged page request: the repository applies
// the ownership filter itself based on the caller's capabilities, so
// callers never branch on role.
type PageQuery struct {
	Login  string
	Admin  bool
	Offset int
	Limit  int
}

// PointsRepository points data access
type PointsRepository interface {
	// Save inserts the record when ID is zero, otherwise upserts by ID
	Save(points *domain.Points) error
	// FindByID returns nil without error when the record is absent
	FindByID(id uint64) (*domain.Points, error)
	// FindPage returns one page plus the total count. Admins see every
	// record ordered by date descending; other callers see only their own.
	FindPage(q PageQuery) ([]domain.Points, int64, error)
	// FindAllInWeek returns all records dated within [start, end],
	// regardless of owner. Callers re-filter by ownership.
	FindAllInWeek(start, end domain.LocalDate) ([]domain.Points, error)
	// Delete removes by ID; deleting a missing ID is not an error
	Delete(id uint64) error
}

type pointsRepository struct {
	db *gorm.DB
}

// NewPointsRepository creates a new PointsRepository
func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) Save(points *domain.Points) error {
	return r.db.Save(points).Error
}

func (r *pointsRepository) FindByID(id uint64) (*domain.Points, error) {
	var points domain.Points
	err := r.db.Preload("User").First(&points, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &points, nil
}

func (r *pointsRepository) FindPage(q PageQuery) ([]domain.Points, int64, error) {
	base := r.db.Model(&domain.Points{})
	if !q.Admin {
		base = base.Joins("JOIN users ON users.id = points.user_id").
			Where("users.login = ?", q.Login)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []domain.Points
	if err := base.Preload("User").
		Order("date DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *pointsRepository) FindAllInWeek(start, end domain.LocalDate) ([]domain.Points, error) {
	var records []domain.Points
	err := r.db.Preload("User").
		Where("date BETWEEN ? AND ?", start, end).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *pointsRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Points{}, id).Error
}
