package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverFound(t *testing.T) {
	r := NewResolver(testCatalog)

	code := r.Resolve("United States of America")
	assert.True(t, code.Found)
	assert.Equal(t, 840, code.Numeric)
	assert.Equal(t, 840, *code.Ptr())
}

func TestResolverNotFound(t *testing.T) {
	r := NewResolver(testCatalog)

	for _, name := range []string{"Atlantis", "Germny", "", "   "} {
		code := r.Resolve(name)
		assert.False(t, code.Found, name)
		assert.Nil(t, code.Ptr(), name)
	}
}

func TestResolverLooseForms(t *testing.T) {
	r := NewResolver(MapCatalog{"cote d'ivoire": 384, "Bolivia": 68})

	assert.Equal(t, Code{Numeric: 384, Found: true}, r.Resolve("Côte d'Ivoire"))
	assert.Equal(t, Code{Numeric: 68, Found: true}, r.Resolve("Bolivia (Plurinational State of)"))
}

type countingCatalog struct {
	calls int
}

func (c *countingCatalog) Lookup(name string) (int, bool) {
	c.calls++
	return 0, false
}

func TestResolverIdempotent(t *testing.T) {
	cat := &countingCatalog{}
	r := NewResolver(cat)

	first := r.Resolve("Nowhere")
	calls := cat.calls
	second := r.Resolve("Nowhere")

	assert.Equal(t, first, second)
	assert.Equal(t, calls, cat.calls)
}

type panickyCatalog struct{}

func (panickyCatalog) Lookup(string) (int, bool) { panic("boom") }

func TestResolverRecoversCatalogPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.False(t, NewResolver(panickyCatalog{}).Resolve("Germany").Found)
	})
}

func TestISOCatalog(t *testing.T) {
	r := NewResolver(ISOCatalog{})

	assert.Equal(t, Code{Numeric: 276, Found: true}, r.Resolve("Germany"))
	assert.Equal(t, Code{Numeric: 250, Found: true}, r.Resolve("France"))
	assert.False(t, r.Resolve("Atlantis").Found)
}

func TestDefaultCatalogOfficialNames(t *testing.T) {
	r := NewResolver(DefaultCatalog())

	assert.Equal(t, Code{Numeric: 826, Found: true}, r.Resolve("United Kingdom of Great Britain and Northern Ireland"))
	assert.Equal(t, Code{Numeric: 834, Found: true}, r.Resolve("United Republic of Tanzania"))
	assert.Equal(t, Code{Numeric: 807, Found: true}, r.Resolve("The former Yugoslav republic of Macedonia"))
	assert.Equal(t, Code{Numeric: 276, Found: true}, r.Resolve("Germany"))
	assert.False(t, r.Resolve("Atlantis").Found)
}

func TestChainCatalog(t *testing.T) {
	chain := ChainCatalog{MapCatalog{"Germany": 276}, MapCatalog{"Germany": 1, "France": 250}}

	code, ok := chain.Lookup("Germany")
	assert.True(t, ok)
	assert.Equal(t, 276, code)

	code, ok = chain.Lookup("France")
	assert.True(t, ok)
	assert.Equal(t, 250, code)

	_, ok = chain.Lookup("Atlantis")
	assert.False(t, ok)
}

func TestTableResolve(t *testing.T) {
	table := loadSample(t)

	assert.Equal(t, 840, table.CodeOf("United States of America").Numeric)
	assert.Equal(t, 68, table.CodeOf("Bolivia (Plurinational State of)").Numeric)
	assert.False(t, table.CodeOf("Atlantis").Found)
	assert.Equal(t, []string{"Atlantis"}, table.Unmatched())
	assert.Empty(t, table.Collisions)
}

func TestTableResolveCollision(t *testing.T) {
	table := loadSample(t)
	table.Resolve(NewResolver(MapCatalog{"Germany": 276, "France": 276}))

	assert.True(t, table.CodeOf("Germany").Found)
	assert.False(t, table.CodeOf("France").Found)
	assert.Equal(t, []string{"France"}, table.Collisions)
}
