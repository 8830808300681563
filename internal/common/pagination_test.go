package common

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBuildLinkHeader_MiddlePage(t *testing.T) {
	header := BuildLinkHeader("/api/points", 2, 20, 100)

	assert.Contains(t, header, `</api/points?page=3&per_page=20>; rel="next"`)
	assert.Contains(t, header, `</api/points?page=1&per_page=20>; rel="prev"`)
	assert.Contains(t, header, `</api/points?page=5&per_page=20>; rel="last"`)
	assert.Contains(t, header, `</api/points?page=1&per_page=20>; rel="first"`)
}

func TestBuildLinkHeader_SinglePage(t *testing.T) {
	header := BuildLinkHeader("/api/points", 1, 20, 5)

	assert.NotContains(t, header, `rel="next"`)
	assert.NotContains(t, header, `rel="prev"`)
	assert.Contains(t, header, `</api/points?page=1&per_page=20>; rel="last"`)
}

func TestBuildLinkHeader_Empty(t *testing.T) {
	header := BuildLinkHeader("/api/points", 1, 20, 0)

	// An empty result set still links to page 1
	assert.Contains(t, header, `</api/points?page=1&per_page=20>; rel="last"`)
}

func TestParsePageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&per_page=50", 3, 50},
		{"zero page clamped", "page=0", 1, 20},
		{"oversized per_page clamped", "per_page=1000", 1, 20},
		{"garbage ignored", "page=abc&per_page=xyz", 1, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/points?"+tc.query, nil)

			page, perPage := ParsePageParams(c)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPerPage, perPage)
		})
	}
}
