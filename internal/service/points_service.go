package service

import (
	"context"
	"errors"
	"time"

	"github.com/healthpoints/healthpoints-backend/internal/common"
	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"github.com/healthpoints/healthpoints-backend/internal/repository"
	pkglogger "github.com/healthpoints/healthpoints-backend/pkg/logger"
)

// ErrSearchUnavailable is returned when no search index is configured
var ErrSearchUnavailable = errors.New("search index unavailable")

// Caller is the authenticated identity an operation runs as. Handlers
// resolve it from the request context; services never read ambient state.
type Caller struct {
	Login string
	Admin bool
}

// PointsIndexer mirrors points records into the search index
type PointsIndexer interface {
	Index(ctx context.Context, points *domain.Points) error
	Delete(ctx context.Context, id uint64) error
	Search(ctx context.Context, query string) ([]domain.Points, error)
}

// PointsService implements the points business rules: user defaulting
// on create, the update-without-id create fallback, the weekly
// aggregate, and best-effort index mirroring after every write.
type PointsService struct {
	pointsRepo repository.PointsRepository
	userRepo   repository.UserRepository
	index      PointsIndexer // nil when search is disabled

	// now is replaceable in tests to pin the current week
	now func() time.Time
}

// NewPointsService creates a new PointsService. index may be nil, in
// which case writes are not mirrored and Search fails.
func NewPointsService(pointsRepo repository.PointsRepository, userRepo repository.UserRepository, index PointsIndexer) *PointsService {
	return &PointsService{
		pointsRepo: pointsRepo,
		userRepo:   userRepo,
		index:      index,
		now:        time.Now,
	}
}

// Create persists a new points record. The record must not carry an id;
// a missing owner defaults to the caller.
func (s *PointsService) Create(ctx context.Context, caller Caller, points *domain.Points) (*domain.Points, error) {
	if points.ID != 0 {
		return nil, common.ErrIDAlreadySet
	}

	if err := s.resolveOwner(caller, points); err != nil {
		return nil, err
	}

	if err := s.pointsRepo.Save(points); err != nil {
		return nil, err
	}

	s.mirror(ctx, points)
	return points, nil
}

// Update upserts an existing points record. Callers must route
// id-less payloads through Create instead.
func (s *PointsService) Update(ctx context.Context, caller Caller, points *domain.Points) (*domain.Points, error) {
	if err := s.resolveOwner(caller, points); err != nil {
		return nil, err
	}

	if err := s.pointsRepo.Save(points); err != nil {
		return nil, err
	}

	s.mirror(ctx, points)
	return points, nil
}

// List returns one page of records. The ownership filter is applied by
// the repository based on the caller's capabilities.
func (s *PointsService) List(caller Caller, page, perPage int) ([]domain.Points, int64, error) {
	return s.pointsRepo.FindPage(repository.PageQuery{
		Login:  caller.Login,
		Admin:  caller.Admin,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	})
}

// PointsThisWeek sums the caller's points for the current Monday-start
// week. The store filters by week only; ownership is re-checked here
// because the window query may return other users' records.
func (s *PointsService) PointsThisWeek(caller Caller) (*domain.PointsThisWeek, error) {
	weekStart := domain.StartOfWeek(s.now())
	weekEnd := domain.DateOf(weekStart.AddDate(0, 0, 6))

	records, err := s.pointsRepo.FindAllInWeek(weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	total := 0
	for i := range records {
		p := &records[i]
		// only count records owned by the caller
		if p.User != nil && p.User.Login == caller.Login {
			total += p.TotalPoints()
		}
	}

	return &domain.PointsThisWeek{WeekStart: weekStart, Points: total}, nil
}

// Get fetches one record by id; returns nil when absent
func (s *PointsService) Get(id uint64) (*domain.Points, error) {
	return s.pointsRepo.FindByID(id)
}

// Delete removes a record from the store and the search index. No
// existence check is performed.
func (s *PointsService) Delete(ctx context.Context, id uint64) error {
	if err := s.pointsRepo.Delete(id); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Delete(ctx, id); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Uint64("id", id).
				Msg("failed to remove points record from search index")
		}
	}
	return nil
}

// Search runs a free-text query against the search index
func (s *PointsService) Search(ctx context.Context, query string) ([]domain.Points, error) {
	if s.index == nil {
		return nil, ErrSearchUnavailable
	}
	return s.index.Search(ctx, query)
}

// resolveOwner attaches the owning account. A payload without an owner
// (or with an unsaved one) is assigned to the caller.
func (s *PointsService) resolveOwner(caller Caller, points *domain.Points) error {
	if points.User != nil && points.User.ID != 0 {
		points.UserID = points.User.ID
		return nil
	}

	user, err := s.userRepo.FindOneByLogin(caller.Login)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrUserNotFound
	}

	points.User = user
	points.UserID = user.ID
	return nil
}

// mirror indexes a record best-effort: the relational write is
// authoritative and an index failure never fails the request.
func (s *PointsService) mirror(ctx context.Context, points *domain.Points) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, points); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Uint64("id", points.ID).
			Msg("failed to mirror points record to search index")
	}
}
