package listing

import "github.com/louisbranch/eventboard/internal/services/events/domain"

// TotalPages returns ceil(total/limit), or 1 when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Navigate moves page one step in dir within [1, totalPages]. The result is
// never below 1, so "last" over an empty listing lands on page 1.
func Navigate(page, totalPages int, dir domain.Direction) int {
	switch dir {
	case domain.DirectionNext:
		if page < totalPages {
			page++
		}
	case domain.DirectionPrev:
		if page > 1 {
			page--
		}
	case domain.DirectionFirst:
		page = 1
	case domain.DirectionLast:
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// ClampPage bounds page to [1, max(1, TotalPages(total, limit))].
func ClampPage(page, total, limit int) int {
	maxPage := TotalPages(total, limit)
	if maxPage < 1 {
		maxPage = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageWindow returns the [start, end) slice bounds of page within n items.
func PageWindow(page, limit, n int) (int, int) {
	if limit <= 0 || page < 1 {
		return 0, 0
	}
	start := (page - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

// ButtonRange returns the inclusive range of page buttons to show, at most
// maxButtons wide and centred on page where possible.
func ButtonRange(page, totalPages, maxButtons int) (int, int) {
	if totalPages < 1 {
		return 1, 1
	}
	if maxButtons < 1 {
		maxButtons = 1
	}
	page = ClampPage(page, totalPages, 1)
	if totalPages <= maxButtons {
		return 1, totalPages
	}
	first := page - maxButtons/2
	if first < 1 {
		first = 1
	}
	last := first + maxButtons - 1
	if last > totalPages {
		last = totalPages
		first = last - maxButtons + 1
	}
	return first, last
}
