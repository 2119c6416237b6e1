package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		perPage     int
		requested   string
		wantNumber  int
		wantPages   int
		wantOffset  int
		hasPrevious bool
		hasNext     bool
	}{
		{"first page", 45, 20, "1", 1, 3, 0, false, true},
		{"middle page", 45, 20, "2", 2, 3, 20, true, true},
		{"last page", 45, 20, "3", 3, 3, 40, true, false},
		{"empty requested", 45, 20, "", 1, 3, 0, false, true},
		{"not a number", 45, 20, "abc", 1, 3, 0, false, true},
		{"zero", 45, 20, "0", 1, 3, 0, false, true},
		{"negative", 45, 20, "-3", 1, 3, 0, false, true},
		{"float", 45, 20, "2.5", 1, 3, 0, false, true},
		{"beyond last", 45, 20, "99", 3, 3, 40, true, false},
		{"padded", 45, 20, " 2 ", 2, 3, 20, true, true},
		{"exact multiple", 40, 20, "2", 2, 2, 20, true, false},
		{"no items", 0, 20, "5", 1, 1, 0, false, false},
		{"posts per page", 3, 2, "2", 2, 2, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.count, tt.perPage, tt.requested)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantPages, p.NumPages)
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.Equal(t, tt.perPage, p.Limit())
			assert.Equal(t, tt.hasPrevious, p.HasPrevious())
			assert.Equal(t, tt.hasNext, p.HasNext())
		})
	}
}

func TestIndexes(t *testing.T) {
	p := New(45, 20, "3")
	assert.Equal(t, 41, p.StartIndex())
	assert.Equal(t, 45, p.EndIndex())
	assert.Equal(t, 2, p.PreviousPageNumber())
	assert.Equal(t, 3, p.NextPageNumber())

	empty := New(0, 20, "1")
	assert.Equal(t, 0, empty.StartIndex())
	assert.Equal(t, 0, empty.EndIndex())
	assert.False(t, empty.HasOtherPages())
}

func TestPageRange(t *testing.T) {
	tests := []struct {
		count   int
		current string
		want    []int
	}{
		{0, "1", []int{1}},
		{2, "1", []int{1}},
		{12, "1", []int{1, 2, 3, 4, 5, 6}},
		{12, "6", []int{1, 2, 3, 4, 5, 6}},
		{14, "1", []int{1, 2, 3, 4}},
		{14, "7", []int{1, 2, 3, 4}},
		{200, "50", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.count)+"/"+tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.count, 2, tt.current).PageRange())
		})
	}
}

func TestPageFor(t *testing.T) {
	assert.Equal(t, 1, PageFor(1, 2))
	assert.Equal(t, 1, PageFor(2, 2))
	assert.Equal(t, 2, PageFor(3, 2))
	assert.Equal(t, 5, PageFor(10, 2))
	assert.Equal(t, 1, PageFor(0, 2))
	assert.Equal(t, 3, PageFor(41, 20))
}

func TestSlicePartitionsSequence(t *testing.T) {
	for n := 0; n <= 25; n++ {
		for _, perPage := range []int{1, 2, 3, 7, 20} {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			first := Slice(items, perPage, "1")
			var joined []int
			for page := 1; page <= first.NumPages; page++ {
				p := Slice(items, perPage, strconv.Itoa(page))
				require.Equal(t, page, p.Number)
				require.LessOrEqual(t, len(p.Items), perPage)
				joined = append(joined, p.Items...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				assert.Equal(t, 1, first.NumPages)
				continue
			}
			assert.Equal(t, items, joined, "n=%d perPage=%d", n, perPage)
		}
	}
}

func TestSliceClampsOutOfRange(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, []string{"e"}, Slice(items, 2, "10").Items)
	assert.Equal(t, []string{"a", "b"}, Slice(items, 2, "nope").Items)
	assert.Empty(t, Slice([]string{}, 2, "3").Items)
}
