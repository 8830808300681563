package search

import (
	"testing"
	"time"

	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocumentFromPoints(t *testing.T) {
	p := &domain.Points{
		ID:       7,
		Date:     domain.NewLocalDate(2026, time.August, 24),
		Exercise: 1,
		Meals:    1,
		Alcohol:  1,
		User:     &domain.User{Login: "jdoe"},
	}

	doc := DocumentFromPoints(p)
	assert.Equal(t, uint64(7), doc.ID)
	assert.Equal(t, "2026-08-24", doc.Date)
	assert.Equal(t, "jdoe", doc.UserLogin)
}

func TestDocumentFromPoints_NoUser(t *testing.T) {
	doc := DocumentFromPoints(&domain.Points{ID: 1, Date: domain.NewLocalDate(2026, time.August, 24)})
	assert.Empty(t, doc.UserLogin)
}

func TestPointsFromSource(t *testing.T) {
	source := map[string]interface{}{
		"id":         float64(7),
		"date":       "2026-08-24",
		"exercise":   float64(2),
		"meals":      float64(1),
		"alcohol":    float64(0),
		"user_login": "jdoe",
	}

	p, err := PointsFromSource(source)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), p.ID)
	assert.Equal(t, "2026-08-24", p.Date.String())
	assert.Equal(t, 3, p.TotalPoints())
	assert.Equal(t, "jdoe", p.User.Login)
}

func TestPointsFromSource_BadDate(t *testing.T) {
	_, err := PointsFromSource(map[string]interface{}{"date": "not-a-date"})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	p := &domain.Points{
		ID:       42,
		Date:     domain.NewLocalDate(2026, time.January, 5),
		Exercise: 3,
		User:     &domain.User{Login: "admin"},
	}

	doc := DocumentFromPoints(p)
	back, err := PointsFromSource(map[string]interface{}{
		"id":         float64(doc.ID),
		"date":       doc.Date,
		"exercise":   float64(doc.Exercise),
		"meals":      float64(doc.Meals),
		"alcohol":    float64(doc.Alcohol),
		"user_login": doc.UserLogin,
	})
	assert.NoError(t, err)
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.Date.String(), back.Date.String())
	assert.Equal(t, p.User.Login, back.User.Login)
}
