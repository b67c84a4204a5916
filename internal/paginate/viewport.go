package paginate

// Breakpoint maps viewport widths below MaxWidth to a page size.
type Breakpoint struct {
	MaxWidth int
	PageSize int
}

// Breakpoints is the viewport table used by the book list. The 640 and 768
// tiers both map to 6.
var Breakpoints = []Breakpoint{
	{MaxWidth: 640, PageSize: 6},
	{MaxWidth: 768, PageSize: 6},
	{MaxWidth: 1024, PageSize: 12},
}

// WidePageSize applies at and above the last breakpoint.
const WidePageSize = 12

// PageSizeForWidth returns the page size for a viewport width in pixels.
func PageSizeForWidth(width int) int {
	for _, bp := range Breakpoints {
		if width < bp.MaxWidth {
			return bp.PageSize
		}
	}
	return WidePageSize
}
