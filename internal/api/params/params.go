// Package params parses the pagination, search and sort query parameters of
// list endpoints and computes their response metadata.
package params

import (
	"net/url"
	"strconv"

	"github.com/teamboard/teamboard/internal/discussion"
)

// PageSize is the fixed page size of discussion and comment listings.
const PageSize = 10

const (
	defaultUserLimit = 50
	maxUserLimit     = 100
)

// UserList holds the parsed query parameters of the user listing.
type UserList struct {
	Search string
	Limit  int
	Offset int
}

// UserListMeta is the response metadata of the user listing.
type UserListMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// ParseUserList reads search, limit and offset. Limit is clamped to [1, 100]
// and defaults to 50; offset is non-negative and defaults to 0. Values that
// fail to parse fall back to their defaults.
func ParseUserList(query url.Values) UserList {
	p := UserList{
		Search: query.Get("search"),
		Limit:  defaultUserLimit,
		Offset: 0,
	}

	if v, err := strconv.Atoi(query.Get("limit")); err == nil {
		p.Limit = v
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > maxUserLimit {
		p.Limit = maxUserLimit
	}

	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v >= 0 {
		p.Offset = v
	}

	return p
}

// Meta computes the user listing metadata for a total match count.
func (p UserList) Meta(total int) UserListMeta {
	return UserListMeta{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.Offset+p.Limit < total,
	}
}

// Page holds a 1-based page number for fixed-size listings.
type Page struct {
	Page int
}

// PageMeta is the response metadata of page-numbered listings.
type PageMeta struct {
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ParsePage reads the 1-based page parameter, defaulting to 1.
func ParsePage(query url.Values) Page {
	p := Page{Page: 1}
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v >= 1 {
		p.Page = v
	}
	return p
}

// Offset converts the page number into a row offset.
func (p Page) Offset() int {
	return (p.Page - 1) * PageSize
}

// Meta computes the page metadata for a total match count, with
// totalPages = ceil(total / PageSize).
func (p Page) Meta(total int) PageMeta {
	return PageMeta{
		Page:       p.Page,
		Total:      total,
		TotalPages: (total + PageSize - 1) / PageSize,
	}
}

// DiscussionList holds the parsed query parameters of the discussion
// listing.
type DiscussionList struct {
	Page
	Search    string
	SortBy    string
	SortOrder string
}

// ParseDiscussionList reads page, search, sortBy and sortOrder. Sort keys
// outside the whitelist fall back to newest-first.
func ParseDiscussionList(query url.Values) DiscussionList {
	p := DiscussionList{
		Page:      ParsePage(query),
		Search:    query.Get("search"),
		SortBy:    discussion.SortByCreatedAt,
		SortOrder: discussion.SortDesc,
	}

	if query.Get("sortBy") == discussion.SortByTitle {
		p.SortBy = discussion.SortByTitle
	}
	if query.Get("sortOrder") == discussion.SortAsc {
		p.SortOrder = discussion.SortAsc
	}

	return p
}

// Filter converts the parsed parameters into a repository list filter.
func (p DiscussionList) Filter() discussion.ListFilter {
	return discussion.ListFilter{
		Search:    p.Search,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Limit:     PageSize,
		Offset:    p.Offset(),
	}
}
