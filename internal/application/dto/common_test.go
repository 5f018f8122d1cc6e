package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	p := PageRequest{Limit: 0, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, PageRequest{Limit: 20, Offset: 0}, p)

	p = PageRequest{Limit: 500, Offset: 40}
	p.DefaultPage()
	assert.Equal(t, PageRequest{Limit: 100, Offset: 40}, p)
	assert.Equal(t, 101, p.FetchLimit())
}

func TestPaginate(t *testing.T) {
	req := PageRequest{Limit: 2, Offset: 4}

	rows, page := Paginate([]string{"a", "b", "c"}, req)
	assert.Equal(t, []string{"a", "b"}, rows)
	assert.Equal(t, PageResponse{Limit: 2, Offset: 4, HasMore: true}, page)

	rows, page = Paginate([]string{"a", "b"}, req)
	assert.Len(t, rows, 2)
	assert.False(t, page.HasMore)

	rows, page = Paginate([]string{}, req)
	assert.Empty(t, rows)
	assert.False(t, page.HasMore)
}
