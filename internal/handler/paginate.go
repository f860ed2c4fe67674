package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pageParams reads page/per_page query parameters with sane bounds.
func pageParams(c echo.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// pageCount returns the number of pages covering total records.
func pageCount(total int64, perPage int) int {
	return int((total + int64(perPage) - 1) / int64(perPage))
}
