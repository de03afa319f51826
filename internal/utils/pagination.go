package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("limit", "20"), 20)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PageSlice returns the window of list selected by pg. The filter and
// sort engines work on full in-memory snapshots, so paging happens last.
func PageSlice[T any](list []T, pg Pagination) []T {
	if pg.Offset >= len(list) {
		return []T{}
	}
	end := pg.Offset + pg.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[pg.Offset:end]
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
