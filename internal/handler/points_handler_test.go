package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"github.com/healthpoints/healthpoints-backend/internal/middleware"
	"github.com/healthpoints/healthpoints-backend/internal/repository"
	"github.com/healthpoints/healthpoints-backend/internal/service"
	"github.com/healthpoints/healthpoints-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type mockPointsRepo struct {
	mock.Mock
}

func (m *mockPointsRepo) Save(points *domain.Points) error {
	return m.Called(points).Error(0)
}

func (m *mockPointsRepo) FindByID(id uint64) (*domain.Points, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Points), args.Error(1)
}

func (m *mockPointsRepo) FindPage(q repository.PageQuery) ([]domain.Points, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Points), args.Get(1).(int64), args.Error(2)
}

func (m *mockPointsRepo) FindAllInWeek(start, end domain.LocalDate) ([]domain.Points, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Points), args.Error(1)
}

func (m *mockPointsRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindOneByLogin(login string) (*domain.User, error) {
	args := m.Called(login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) Index(ctx context.Context, points *domain.Points) error {
	return m.Called(ctx, points).Error(0)
}

func (m *mockIndexer) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndexer) Search(ctx context.Context, query string) ([]domain.Points, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Points), args.Error(1)
}

// --- Fixture ---

type fixture struct {
	router     *gin.Engine
	pointsRepo *mockPointsRepo
	userRepo   *mockUserRepo
	index      *mockIndexer
	jwtManager *jwt.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		pointsRepo: new(mockPointsRepo),
		userRepo:   new(mockUserRepo),
		index:      new(mockIndexer),
		jwtManager: jwt.NewManager("test-secret-key-for-testing-only-32b!", 15),
	}

	svc := service.NewPointsService(f.pointsRepo, f.userRepo, f.index)
	pointsHandler := NewPointsHandler(svc)

	f.router = gin.New()
	api := f.router.Group("/api")
	api.Use(middleware.JWTAuth(f.jwtManager))
	api.POST("/points", pointsHandler.Create)
	api.PUT("/points", pointsHandler.Update)
	api.GET("/points", pointsHandler.List)
	api.GET("/points-this-week", pointsHandler.GetPointsThisWeek)
	api.GET("/points/:id", pointsHandler.Get)
	api.DELETE("/points/:id", pointsHandler.Delete)
	api.GET("/_search/points/:query", pointsHandler.Search)

	return f
}

func (f *fixture) do(t *testing.T, method, path, body, login string, level int) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if login != "" {
		token, err := f.jwtManager.Generate(login, level)
		assert.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestCreate_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/points", `{"date":"2026-08-24"}`, "", 0)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate_WithPresetID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/points", `{"id":5,"date":"2026-08-24","exercise":1}`, "jdoe", 1)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A new points record cannot already have an ID", w.Header().Get("Failure"))
	f.pointsRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestCreate_DefaultsUserAndSetsHeaders(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("FindOneByLogin", "jdoe").Return(&domain.User{ID: 3, Login: "jdoe"}, nil)
	f.pointsRepo.On("Save", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Points).ID = 11
	})
	f.index.On("Index", mock.Anything, mock.Anything).Return(nil)

	w := f.do(t, "POST", "/api/points", `{"date":"2026-08-24","exercise":2,"meals":1}`, "jdoe", 1)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/points/11", w.Header().Get("Location"))
	assert.Equal(t, "healthpointsApp.points.created", w.Header().Get("X-healthpointsApp-alert"))
	assert.Equal(t, "11", w.Header().Get("X-healthpointsApp-params"))

	var result domain.Points
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, uint64(11), result.ID)
	assert.Equal(t, "jdoe", result.User.Login)
	f.index.AssertCalled(t, "Index", mock.Anything, mock.Anything)
}

func TestCreate_InvalidBody(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/points", `{"date":`, "jdoe", 1)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_WithoutIDFallsBackToCreate(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("FindOneByLogin", "jdoe").Return(&domain.User{ID: 3, Login: "jdoe"}, nil)
	f.pointsRepo.On("Save", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Points).ID = 12
	})
	f.index.On("Index", mock.Anything, mock.Anything).Return(nil)

	w := f.do(t, "PUT", "/api/points", `{"date":"2026-08-24","exercise":1}`, "jdoe", 1)

	// Same validation, persistence path, and response as a create
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/points/12", w.Header().Get("Location"))
	assert.Equal(t, "healthpointsApp.points.created", w.Header().Get("X-healthpointsApp-alert"))
}

func TestUpdate_WithID(t *testing.T) {
	f := newFixture(t)

	f.userRepo.On("FindOneByLogin", "jdoe").Return(&domain.User{ID: 3, Login: "jdoe"}, nil)
	f.pointsRepo.On("Save", mock.Anything).Return(nil)
	f.index.On("Index", mock.Anything, mock.Anything).Return(nil)

	w := f.do(t, "PUT", "/api/points", `{"id":7,"date":"2026-08-24","alcohol":1}`, "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthpointsApp.points.updated", w.Header().Get("X-healthpointsApp-alert"))
	assert.Equal(t, "7", w.Header().Get("X-healthpointsApp-params"))
}

func TestList_RegularUserScopedToOwnRecords(t *testing.T) {
	f := newFixture(t)

	want := repository.PageQuery{Login: "jdoe", Admin: false, Offset: 0, Limit: 20}
	records := []domain.Points{
		{ID: 2, Date: domain.NewLocalDate(2026, time.August, 25), User: &domain.User{Login: "jdoe"}},
		{ID: 1, Date: domain.NewLocalDate(2026, time.August, 24), User: &domain.User{Login: "jdoe"}},
	}
	f.pointsRepo.On("FindPage", want).Return(records, int64(2), nil)

	w := f.do(t, "GET", "/api/points", "", "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))
	assert.Contains(t, w.Header().Get("Link"), `rel="last"`)
	f.pointsRepo.AssertCalled(t, "FindPage", want)
}

func TestList_AdminSeesAll(t *testing.T) {
	f := newFixture(t)

	want := repository.PageQuery{Login: "root", Admin: true, Offset: 20, Limit: 20}
	f.pointsRepo.On("FindPage", want).Return([]domain.Points{}, int64(45), nil)

	w := f.do(t, "GET", "/api/points?page=2", "", "root", 10)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "45", w.Header().Get("X-Total-Count"))
	assert.Contains(t, w.Header().Get("Link"), "page=3")
	f.pointsRepo.AssertCalled(t, "FindPage", want)
}

func TestPointsThisWeek_FiltersByOwner(t *testing.T) {
	f := newFixture(t)

	records := []domain.Points{
		{Exercise: 2, Meals: 1, User: &domain.User{Login: "jdoe"}},
		{Exercise: 4, Alcohol: 4, User: &domain.User{Login: "other"}},
	}
	f.pointsRepo.On("FindAllInWeek", mock.Anything, mock.Anything).Return(records, nil)

	w := f.do(t, "GET", "/api/points-this-week", "", "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)

	var result domain.PointsThisWeek
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 3, result.Points)
	assert.Equal(t, domain.StartOfWeek(time.Now()).String(), result.WeekStart.String())
}

func TestGet_Found(t *testing.T) {
	f := newFixture(t)

	points := &domain.Points{ID: 7, Date: domain.NewLocalDate(2026, time.August, 24), Exercise: 1}
	f.pointsRepo.On("FindByID", uint64(7)).Return(points, nil)

	w := f.do(t, "GET", "/api/points/7", "", "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"2026-08-24"`)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	f.pointsRepo.On("FindByID", uint64(99)).Return(nil, nil)

	w := f.do(t, "GET", "/api/points/99", "", "jdoe", 1)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGet_InvalidID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "GET", "/api/points/abc", "", "jdoe", 1)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_RemovesFromBothStores(t *testing.T) {
	f := newFixture(t)

	f.pointsRepo.On("Delete", uint64(7)).Return(nil)
	f.index.On("Delete", mock.Anything, uint64(7)).Return(nil)

	w := f.do(t, "DELETE", "/api/points/7", "", "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthpointsApp.points.deleted", w.Header().Get("X-healthpointsApp-alert"))
	assert.Equal(t, "7", w.Header().Get("X-healthpointsApp-params"))
	f.pointsRepo.AssertCalled(t, "Delete", uint64(7))
	f.index.AssertCalled(t, "Delete", mock.Anything, uint64(7))
}

func TestSearch_ReturnsMatches(t *testing.T) {
	f := newFixture(t)

	hits := []domain.Points{
		{ID: 1, Date: domain.NewLocalDate(2026, time.August, 24), User: &domain.User{Login: "jdoe"}},
	}
	f.index.On("Search", mock.Anything, "jdoe").Return(hits, nil)

	w := f.do(t, "GET", "/api/_search/points/jdoe", "", "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)

	var result []domain.Points
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result, 1)
	assert.Equal(t, uint64(1), result[0].ID)
}

func TestSearch_NoMatches(t *testing.T) {
	f := newFixture(t)

	f.index.On("Search", mock.Anything, "nothing").Return([]domain.Points{}, nil)

	w := f.do(t, "GET", "/api/_search/points/nothing", "", "jdoe", 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
