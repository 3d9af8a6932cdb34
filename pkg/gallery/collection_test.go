package gallery

import (
	"testing"

	"fieldnotes/pkg/imaging"

	"github.com/stretchr/testify/assert"
)

func makeFiles(names ...string) []imaging.File {
	files := make([]imaging.File, 0, len(names))
	for _, n := range names {
		files = append(files, imaging.File{
			Name:     n,
			Data:     []byte("fake-image-bytes"),
			MimeType: "image/jpeg",
		})
	}
	return files
}

func orders(records []ImageRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Order
	}
	return out
}

func TestCollection_AddAssignsSequentialOrders(t *testing.T) {
	c := NewCollection(nil)
	c.Add(makeFiles("a.jpg", "b.jpg"))
	c.Add(makeFiles("c.jpg"))

	records := c.Records()
	assert.Len(t, records, 3)
	assert.Equal(t, []int{0, 1, 2}, orders(records))
	assert.Equal(t, "a.jpg", records[0].Filename)
	assert.Equal(t, "c.jpg", records[2].Filename)

	for _, r := range records {
		assert.True(t, r.Pending())
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "local://"+r.ID, r.URL)
	}
}

func TestCollection_RemoveKeepsGapsUntilSubmit(t *testing.T) {
	c := NewCollection(nil)
	c.Add(makeFiles("a.jpg", "b.jpg", "c.jpg"))

	records := c.Records()
	c.Remove(records[1].ID)

	remaining := c.Records()
	assert.Len(t, remaining, 2)
	// Orders are not renumbered on remove.
	assert.Equal(t, []int{0, 2}, orders(remaining))
}

func TestCollection_RemoveUnknownIDIsNoop(t *testing.T) {
	c := NewCollection(nil)
	c.Add(makeFiles("a.jpg"))

	c.Remove("missing-id")
	assert.Equal(t, 1, c.Len())
}

func TestCollection_ReorderYieldsDensePermutation(t *testing.T) {
	c := NewCollection(nil)
	c.Add(makeFiles("a.jpg", "b.jpg", "c.jpg", "d.jpg"))

	records := c.Records()
	// Move d to the front.
	c.Reorder(records[3].ID, records[0].ID)

	reordered := c.Records()
	assert.Equal(t, "d.jpg", reordered[0].Filename)
	assert.Equal(t, "a.jpg", reordered[1].Filename)
	assert.Equal(t, "b.jpg", reordered[2].Filename)
	assert.Equal(t, "c.jpg", reordered[3].Filename)
	assert.Equal(t, []int{0, 1, 2, 3}, orders(reordered))
}

func TestCollection_ReorderForward(t *testing.T) {
	c := NewCollection(nil)
	c.Add(makeFiles("a.jpg", "b.jpg", "c.jpg"))

	records := c.Records()
	// Move a past b, onto c's slot.
	c.Reorder(records[0].ID, records[2].ID)

	reordered := c.Records()
	assert.Equal(t, "b.jpg", reordered[0].Filename)
	assert.Equal(t, "c.jpg", reordered[1].Filename)
	assert.Equal(t, "a.jpg", reordered[2].Filename)
	assert.Equal(t, []int{0, 1, 2}, orders(reordered))
}

func TestCollection_ReorderUnknownIDIsNoop(t *testing.T) {
	c := NewCollection(nil)
	c.Add(makeFiles("a.jpg", "b.jpg"))

	before := c.Records()
	c.Reorder(before[0].ID, "missing-id")

	assert.Equal(t, before, c.Records())
}

func TestMove_PureFunction(t *testing.T) {
	list := []ImageRecord{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
	}

	moved := Move(list, 2, 0)
	assert.Equal(t, "c", moved[0].ID)
	assert.Equal(t, "a", moved[1].ID)
	assert.Equal(t, "b", moved[2].ID)
	assert.Equal(t, "d", moved[3].ID)

	// Out-of-range indexes leave the list unchanged.
	same := Move(list, -1, 2)
	assert.Len(t, same, 4)
	same = Move(list, 0, 9)
	assert.Len(t, same, 4)
}
