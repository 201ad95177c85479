package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		CatalogEntry{Category: "Electronics", Subcategories: []string{"Mobile Phones & Accessories", "Laptops"}},
		CatalogEntry{Category: "Clothing", Subcategories: []string{"Shoes", "Apparel"}},
		CatalogEntry{Category: "Empty"},
	)
	require.NoError(t, err)
	return c
}

func TestCatalogLookups(t *testing.T) {
	c := testCatalog(t)

	require.Equal(t, 3, c.Len())
	require.Equal(t, []string{"Electronics", "Clothing", "Empty"}, c.Categories())
	require.True(t, c.HasCategory("Electronics"))
	require.False(t, c.HasCategory("electronics"))
	require.True(t, c.HasSubcategory("Clothing", "Apparel"))
	require.False(t, c.HasSubcategory("Clothing", "Laptops"))

	def, ok := c.DefaultSubcategory("Electronics")
	require.True(t, ok)
	require.Equal(t, "Mobile Phones & Accessories", def)

	_, ok = c.DefaultSubcategory("Empty")
	require.False(t, ok)

	key, ok := c.FoldCategory("CLOTHING")
	require.True(t, ok)
	require.Equal(t, "Clothing", key)
}

func TestCatalogIsImmutable(t *testing.T) {
	subs := []string{"Shoes"}
	c, err := NewCatalog(CatalogEntry{Category: "Clothing", Subcategories: subs})
	require.NoError(t, err)

	subs[0] = "Hats"
	got, _ := c.Subcategories("Clothing")
	require.Equal(t, []string{"Shoes"}, got)

	got[0] = "Socks"
	again, _ := c.Subcategories("Clothing")
	require.Equal(t, []string{"Shoes"}, again)
}

func TestNewCatalogRejectsBadEntries(t *testing.T) {
	_, err := NewCatalog(CatalogEntry{Category: ""})
	require.ErrorIs(t, err, ErrEmptyCategory)

	_, err = NewCatalog(CatalogEntry{Category: "A"}, CatalogEntry{Category: "A"})
	require.ErrorIs(t, err, ErrDuplicateCategory)

	_, err = NewCatalog(CatalogEntry{Category: "A", Subcategories: []string{"", "x"}})
	require.ErrorIs(t, err, ErrEmptySubcategory)

	_, err = NewCatalog(CatalogEntry{Category: "A", Subcategories: []string{"x", "  "}})
	require.ErrorIs(t, err, ErrEmptySubcategory)
}

func TestCatalogEntries(t *testing.T) {
	c := testCatalog(t)

	entries := c.Entries()
	require.Equal(t, []CatalogEntry{
		{Category: "Electronics", Subcategories: []string{"Mobile Phones & Accessories", "Laptops"}},
		{Category: "Clothing", Subcategories: []string{"Shoes", "Apparel"}},
		{Category: "Empty", Subcategories: nil},
	}, entries)

	entries[0].Subcategories[0] = "Tablets"
	def, _ := c.DefaultSubcategory("Electronics")
	require.Equal(t, "Mobile Phones & Accessories", def)
}

func TestCatalogMarshalKeepsOrder(t *testing.T) {
	c := testCatalog(t)

	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t,
		`{"Electronics":["Mobile Phones & Accessories","Laptops"],"Clothing":["Shoes","Apparel"],"Empty":[]}`,
		string(raw))

	indented, err := c.Indented()
	require.NoError(t, err)
	require.Contains(t, indented, "\n  \"Electronics\": [\n    \"Mobile Phones & Accessories\",")
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	require.Zero(t, c.Len())
	require.False(t, c.HasCategory("x"))
	_, ok := c.FoldCategory("x")
	require.False(t, ok)
	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "{}", string(raw))
}
