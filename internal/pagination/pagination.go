// Package pagination splits ordered listings into fixed-size pages.
//
// Requested page numbers come straight from query strings, so they are never
// rejected: anything that is not a positive integer selects the first page and
// anything past the end selects the last one. An empty listing still has one
// (empty) page.
package pagination

import (
	"strconv"
	"strings"
)

const (
	// windowThreshold is the largest page count for which every page gets a link.
	windowThreshold = 6
	// windowSize is the number of leading page links shown above the threshold.
	windowSize = 4
)

type Paginator struct {
	Count    int `json:"count"`
	PerPage  int `json:"per_page"`
	NumPages int `json:"num_pages"`
	Number   int `json:"page"`
}

// New resolves the requested page against count items split perPage at a time.
func New(count, perPage int, requested string) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	p := Paginator{Count: count, PerPage: perPage, NumPages: numPages(count, perPage)}
	p.Number = min(parsePage(requested), p.NumPages)
	return p
}

func numPages(count, perPage int) int {
	if count == 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

func parsePage(requested string) int {
	n, err := strconv.Atoi(strings.TrimSpace(requested))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PageFor returns the page that holds the item at 1-based position.
func PageFor(position, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	if position < 1 {
		return 1
	}
	return (position + perPage - 1) / perPage
}

func (p Paginator) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Paginator) Limit() int {
	return p.PerPage
}

func (p Paginator) HasPrevious() bool {
	return p.Number > 1
}

func (p Paginator) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Paginator) HasOtherPages() bool {
	return p.HasPrevious() || p.HasNext()
}

func (p Paginator) PreviousPageNumber() int {
	return max(p.Number-1, 1)
}

func (p Paginator) NextPageNumber() int {
	return min(p.Number+1, p.NumPages)
}

// StartIndex is the 1-based position of the first item on the page, 0 for an empty listing.
func (p Paginator) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndIndex is the 1-based position of the last item on the page.
func (p Paginator) EndIndex() int {
	return min(p.Offset()+p.PerPage, p.Count)
}

// PageRange lists the page numbers to render as navigation links. Up to six
// pages are all listed; longer listings only link pages one to four.
func (p Paginator) PageRange() []int {
	n := p.NumPages
	if n > windowThreshold {
		n = windowSize
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

type Page[T any] struct {
	Paginator
	Items []T
}

// Slice paginates an in-memory listing with the same rules as New.
func Slice[T any](items []T, perPage int, requested string) Page[T] {
	p := New(len(items), perPage, requested)
	return Page[T]{Paginator: p, Items: items[p.Offset():p.EndIndex()]}
}
