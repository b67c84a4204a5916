// Package paginate slices an in-memory list into pages.
package paginate

// Page is one visible slice of a list.
type Page[T any] struct {
	Items     []T
	Page      int
	PageCount int
}

// Paginate returns the items visible on the requested page. The page number
// is clamped into [1, PageCount] and PageCount is at least 1. A non-positive
// pageSize yields an empty first page. The returned Items never alias items.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		return Page[T]{Items: []T{}, Page: 1, PageCount: 1}
	}
	count := PageCount(len(items), pageSize)
	page = min(max(1, page), count)

	visible := []T{}
	if start := (page - 1) * pageSize; start < len(items) {
		end := start + min(pageSize, len(items)-start)
		visible = append(make([]T, 0, end-start), items[start:end]...)
	}
	return Page[T]{Items: visible, Page: page, PageCount: count}
}

// PageCount is ceil(total/pageSize), at least 1.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	count := total / pageSize
	if total%pageSize != 0 {
		count++
	}
	return count
}
