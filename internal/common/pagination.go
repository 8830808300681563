package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ParsePageParams reads page/per_page query parameters with defaults
// and clamping. Pages are 1-based.
func ParsePageParams(c *gin.Context) (page, perPage int) {
	page = DefaultPage
	if v, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage))); err == nil {
		page = v
	}
	perPage = DefaultPerPage
	if v, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage))); err == nil {
		perPage = v
	}

	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// SetPaginationHeaders writes X-Total-Count and an RFC 5988 Link header
// for the given page window.
func SetPaginationHeaders(c *gin.Context, baseURL string, page, perPage int, total int64) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("Link", BuildLinkHeader(baseURL, page, perPage, total))
}

// BuildLinkHeader assembles next/prev/last/first page links
func BuildLinkHeader(baseURL string, page, perPage int, total int64) string {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	link := func(p int, rel string) string {
		return fmt.Sprintf("<%s?page=%d&per_page=%d>; rel=\"%s\"", baseURL, p, perPage, rel)
	}

	var links []string
	if page < lastPage {
		links = append(links, link(page+1, "next"))
	}
	if page > 1 {
		links = append(links, link(page-1, "prev"))
	}
	links = append(links, link(lastPage, "last"), link(1, "first"))

	return strings.Join(links, ",")
}
