package service

import (
	"net/url"
	"strconv"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// PageParams is a parsed page request.
type PageParams struct {
	Page int
	Size int
}

// ParsePageParams parses page and page_size query values. Absent or
// non-numeric values fall back to the defaults (page 1, size 10).
func ParsePageParams(page, size string) PageParams {
	return PageParams{
		Page: parsePositiveInt(page, defaultPage),
		Size: parsePositiveInt(size, defaultPageSize),
	}
}

func parsePositiveInt(val string, defaultVal int) int {
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

// Offset returns the zero-based index of the first result on this page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Links derives the next and previous page links for a listing of count
// post-filter results, preserving the other query parameters of the request
// URL. A link is nil at its boundary.
func (p PageParams) Links(requestURL *url.URL, count int) (next, previous *string) {
	if p.Offset()+p.Size < count {
		next = pageLink(requestURL, p.Page+1)
	}
	if p.Page > 1 {
		previous = pageLink(requestURL, p.Page-1)
	}
	return next, previous
}

func pageLink(requestURL *url.URL, page int) *string {
	u := *requestURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
