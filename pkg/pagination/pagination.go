package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Offset within an int32 for any allowed limit.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Page is a normalized page request.
type Page struct {
	Number int
	Limit  int
}

// Meta is the pagination object returned by list endpoints.
type Meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// New normalizes page and limit: page is clamped to [1, MaxPage], limit to [1, MaxLimit].
func New(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

// FromQuery reads ?page= and ?limit=. Missing or non-numeric values use the defaults.
func FromQuery(c *gin.Context) Page {
	return New(queryInt(c, "page", DefaultPage), queryInt(c, "limit", DefaultLimit))
}

func queryInt(c *gin.Context, key string, def int) int {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta builds the response pagination object for total matching items.
func (p Page) Meta(total int) Meta {
	pages := 1
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Meta{CurrentPage: p.Number, PerPage: p.Limit, TotalItems: total, TotalPages: pages}
}
