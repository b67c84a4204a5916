package paginate

import (
	"math"
	"reflect"
	"testing"
)

func oneToTen() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name     string
		items    []int
		size     int
		page     int
		want     []int
		wantPage int
		wantCnt  int
	}{
		{"first page", oneToTen(), 4, 1, []int{1, 2, 3, 4}, 1, 3},
		{"middle page", oneToTen(), 4, 2, []int{5, 6, 7, 8}, 2, 3},
		{"clamped high", oneToTen(), 4, 5, []int{9, 10}, 3, 3},
		{"clamped low", oneToTen(), 4, -3, []int{1, 2, 3, 4}, 1, 3},
		{"exact fit", oneToTen(), 5, 2, []int{6, 7, 8, 9, 10}, 2, 2},
		{"empty", []int{}, 4, 1, []int{}, 1, 1},
		{"nil", nil, 4, 3, []int{}, 1, 1},
		{"zero size", oneToTen(), 0, 1, []int{}, 1, 1},
		{"negative size", oneToTen(), -2, 2, []int{}, 1, 1},
		{"size larger than list", oneToTen(), 12, 1, oneToTen(), 1, 1},
		{"max int size", oneToTen(), math.MaxInt, 1, oneToTen(), 1, 1},
		{"max int size and page", oneToTen(), math.MaxInt, math.MaxInt, oneToTen(), 1, 1},
		{"max int page", oneToTen(), 3, math.MaxInt, []int{10}, 4, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(tc.items, tc.size, tc.page)
			if !reflect.DeepEqual(got.Items, tc.want) {
				t.Fatalf("items = %v, want %v", got.Items, tc.want)
			}
			if got.Page != tc.wantPage || got.PageCount != tc.wantCnt {
				t.Fatalf("page/count = %d/%d, want %d/%d", got.Page, got.PageCount, tc.wantPage, tc.wantCnt)
			}
		})
	}
}

func TestPaginateDoesNotAlias(t *testing.T) {
	items := oneToTen()
	got := Paginate(items, 4, 1)
	got.Items[0] = 99
	if items[0] != 1 {
		t.Fatal("paginate result aliases the input slice")
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{10, 4, 3},
		{10, 5, 2},
		{0, 4, 1},
		{10, 0, 1},
		{math.MaxInt, 1, math.MaxInt},
		{math.MaxInt, math.MaxInt, 1},
		{10, math.MaxInt, 1},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPageSizeForWidth(t *testing.T) {
	cases := map[int]int{
		0:    6,
		639:  6,
		640:  6,
		767:  6,
		768:  12,
		1023: 12,
		1024: 12,
		1920: 12,
	}
	for width, want := range cases {
		if got := PageSizeForWidth(width); got != want {
			t.Fatalf("PageSizeForWidth(%d) = %d, want %d", width, got, want)
		}
	}
}
