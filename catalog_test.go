package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsForSizes(t *testing.T) {
	for category, want := range map[Category]int{
		CategoryLetters: 11,
		CategoryNumbers: 11,
		CategoryShapes:  4,
	} {
		assert.Len(t, itemsFor(category), want, "category %s", category)
	}
}

func TestItemsForReturnsCopy(t *testing.T) {
	items := itemsFor(CategoryLetters)
	items[0] = "Z"

	assert.Equal(t, Item("A"), itemsFor(CategoryLetters)[0])
}

func TestResolvePerCategory(t *testing.T) {
	for _, tc := range []struct {
		uid      string
		category Category
		want     Item
		known    bool
	}{
		{"35278F02", CategoryLetters, "A", true},
		{"35278F02", CategoryNumbers, "0", true},
		{"35278F02", CategoryShapes, "Circle", true},
		{"C26F0901", CategoryLetters, "K", true},
		{"C26F0901", CategoryNumbers, "10", true},
		{"C26F0901", CategoryShapes, "", false},
		{"DEADBEEF", CategoryLetters, "", false},
	} {
		item, known := resolve(tc.uid, tc.category)

		assert.Equal(t, tc.known, known, "%s under %s", tc.uid, tc.category)
		assert.Equal(t, tc.want, item, "%s under %s", tc.uid, tc.category)
	}
}

// The same physical tag stands for different items depending on the active
// category; resolving under one category must never leak another's table.
func TestResolveCrossCategoryReuse(t *testing.T) {
	letter, known := resolve("A3624B39", CategoryLetters)
	require.True(t, known)

	shape, known := resolve("A3624B39", CategoryShapes)
	require.True(t, known)

	assert.Equal(t, Item("B"), letter)
	assert.Equal(t, Item("Rectangle"), shape)
	assert.NotEqual(t, letter, shape)
}

func TestResolveNormalizesUID(t *testing.T) {
	item, known := resolve("  f3c48333 ", CategoryLetters)

	require.True(t, known)
	assert.Equal(t, Item("E"), item)
}

func TestEveryCatalogLetterHasAWord(t *testing.T) {
	for _, letter := range itemsFor(CategoryLetters) {
		word, ok := wordFor(letter)

		assert.True(t, ok, "letter %s", letter)
		assert.NotEmpty(t, word, "letter %s", letter)
	}

	_, ok := wordFor("Z")
	assert.False(t, ok)
}

func TestParseCategoryDefaultsToLetters(t *testing.T) {
	assert.Equal(t, CategoryNumbers, parseCategory("Numbers"))
	assert.Equal(t, CategoryLetters, parseCategory("Colors"))
	assert.Equal(t, CategoryLetters, parseCategory(""))
}
