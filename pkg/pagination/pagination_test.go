package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	cases := []struct {
		name        string
		totalPages  int
		currentPage int
		want        []int
	}{
		{"first page of ten", 10, 1, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"second page anchors same window", 10, 2, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"middle page", 10, 5, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}},
		{"second to last page", 10, 9, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"last page of ten", 10, 10, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"four pages show all", 4, 1, []int{1, 2, 3, 4}},
		{"four pages any current", 4, 3, []int{1, 2, 3, 4}},
		{"five pages show all", 5, 5, []int{1, 2, 3, 4, 5}},
		{"six pages middle", 6, 3, []int{1, 2, 3, 4, Ellipsis, 6}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 0, 1, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Window(tc.totalPages, tc.currentPage))
		})
	}
}

func TestManualEngine_NeverSlices(t *testing.T) {
	rows := []string{"a", "b", "c"}
	e := NewManual(rows, 2, 12, 30)

	assert.Equal(t, rows, e.Rows())
	assert.Equal(t, 30, e.TotalElements())
	assert.Equal(t, 3, e.TotalPages())
	assert.Equal(t, 2, e.CurrentPage())
}

func TestManualEngine_ReportsPageChange(t *testing.T) {
	e := NewManual([]string{"a"}, 1, 10, 50)

	var requested []int
	e.OnPageChange = func(page int) { requested = append(requested, page) }

	e.SetPage(3)
	e.SetPage(3) // unchanged page does not refire
	e.SetPage(99)

	assert.Equal(t, []int{3, 5}, requested)
	assert.Equal(t, 5, e.CurrentPage())
}

func TestAutoEngine_SlicesExactBounds(t *testing.T) {
	rows := make([]int, 25)
	for i := range rows {
		rows[i] = i
	}

	e := NewAuto(rows, 2, 10)
	page := e.Rows()

	assert.Len(t, page, 10)
	assert.Equal(t, 10, page[0])
	assert.Equal(t, 19, page[9])
	assert.Equal(t, 3, e.TotalPages())
}

func TestAutoEngine_LastPartialPage(t *testing.T) {
	rows := []int{0, 1, 2, 3, 4, 5, 6}

	e := NewAuto(rows, 3, 3)
	page := e.Rows()

	assert.Equal(t, []int{6}, page)
}

func TestAutoEngine_PastEndYieldsNoRows(t *testing.T) {
	e := NewAuto([]int{1, 2}, 5, 10)
	assert.Empty(t, e.Rows())
}

func TestEngine_StatePriority(t *testing.T) {
	e := NewAuto([]int{}, 1, 10)
	assert.Equal(t, StateEmpty, e.State())

	e.SetError(errors.New("fetch failed"))
	assert.Equal(t, StateError, e.State())

	e.SetLoading(true)
	assert.Equal(t, StateLoading, e.State())

	e.SetLoading(false)
	e.SetError(nil)
	assert.Equal(t, StateEmpty, e.State())

	populated := NewAuto([]int{1}, 1, 10)
	assert.Equal(t, StatePopulated, populated.State())
}

func TestEngine_SetPageClampsToRange(t *testing.T) {
	e := NewAuto([]int{1, 2, 3, 4}, 1, 2)

	e.SetPage(0)
	assert.Equal(t, 1, e.CurrentPage())

	e.SetPage(9)
	assert.Equal(t, 2, e.CurrentPage())
}
