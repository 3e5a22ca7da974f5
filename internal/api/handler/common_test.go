package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=0", 1, 10},
		{"page=-5&limit=-1", 1, 10},
		{"page=2&limit=1000", 2, 100},
		{"page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range cases {
		c := paginationContext(tc.query)
		page, limit := parsePagination(c)
		assert.Equal(t, tc.page, page, "query=%q", tc.query)
		assert.Equal(t, tc.limit, limit, "query=%q", tc.query)
	}
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := parseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = parseIDParam(c, "id")
	assert.False(t, ok)

	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	_, ok = parseIDParam(c, "id")
	assert.False(t, ok)
}
