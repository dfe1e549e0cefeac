package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductQuery_Defaults(t *testing.T) {
	q := NewProductQuery()

	assert.Equal(t, SortName, q.Sort)
	assert.Equal(t, DirAsc, q.Dir)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 25, q.PerPage)
}

func TestProductQuery_Direction(t *testing.T) {
	q := &ProductQuery{Dir: "desc"}
	assert.Equal(t, DirDesc, q.Direction())

	q.Dir = "DESC"
	assert.Equal(t, DirDesc, q.Direction())

	q.Dir = "asc"
	assert.Equal(t, DirAsc, q.Direction())

	// Anything that is not "desc" sorts ascending.
	q.Dir = "sideways"
	assert.Equal(t, DirAsc, q.Direction())

	q.Dir = ""
	assert.Equal(t, DirAsc, q.Direction())
}

func TestProductQuery_Offset(t *testing.T) {
	q := &ProductQuery{Page: 2, PerPage: 25}
	assert.Equal(t, 25, q.Offset())

	q = &ProductQuery{Page: 1, PerPage: 25}
	assert.Equal(t, 0, q.Offset())

	// A nonsensical page never produces a negative offset.
	q = &ProductQuery{Page: 0, PerPage: 25}
	assert.Equal(t, 0, q.Offset())

	q = &ProductQuery{Page: -3, PerPage: 10}
	assert.Equal(t, 0, q.Offset())
}

func TestProductQuery_Normalize(t *testing.T) {
	q := &ProductQuery{Page: 0, PerPage: -1}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPerPage, q.PerPage)
}

func TestUnit_Label(t *testing.T) {
	abbrev := "€"
	u := &Unit{Code: "EUR", Abbreviation: &abbrev}
	assert.Equal(t, "€", u.Label())

	u = &Unit{Code: "EUR"}
	assert.Equal(t, "EUR", u.Label())

	empty := ""
	u = &Unit{Code: "EUR", Abbreviation: &empty}
	assert.Equal(t, "EUR", u.Label())
}
