package main

import "strings"

// Category selects which item set a session quizzes on.
type Category string

const (
	CategoryLetters Category = "Letters"
	CategoryNumbers Category = "Numbers"
	CategoryShapes  Category = "Shapes"
)

// Item is one quizzable label within a category ("A", "7", "Circle").
type Item string

// Each physical tag has a single fixed UID, but every category keeps its own
// UID table, so the same tag stands for a different item depending on which
// category is active. The number table reuses the letter tags in order, and
// the shape table reuses the first four.
var letterUIDs = map[string]Item{
	"35278F02": "A", "A3624B39": "B", "93B09239": "C", "436F7733": "D",
	"F3C48333": "E", "234F4F39": "F", "2F2499DA": "G", "F2910C01": "H",
	"62A60901": "I", "E2B81201": "J", "C26F0901": "K",
}

var numberUIDs = map[string]Item{
	"35278F02": "0", "A3624B39": "1", "93B09239": "2", "436F7733": "3",
	"F3C48333": "4", "234F4F39": "5", "2F2499DA": "6", "F2910C01": "7",
	"62A60901": "8", "E2B81201": "9", "C26F0901": "10",
}

var shapeUIDs = map[string]Item{
	"35278F02": "Circle",
	"A3624B39": "Rectangle",
	"93B09239": "Triangle",
	"436F7733": "Square",
}

var letterWords = map[Item]string{
	"A": "Apple", "B": "Ball", "C": "Cat", "D": "Duck", "E": "Egg",
	"F": "Frog", "G": "Goat", "H": "House", "I": "Ice Cream",
	"J": "Jug", "K": "Kite",
}

var catalogItems = map[Category][]Item{
	CategoryLetters: {"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"},
	CategoryNumbers: {"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
	CategoryShapes:  {"Circle", "Rectangle", "Triangle", "Square"},
}

// itemsFor returns a fresh copy of the canonical item list for a category.
// The order is stable and defines the Sequential traversal order.
func itemsFor(category Category) []Item {
	return append([]Item(nil), catalogItems[category]...)
}

// resolve maps a scanned tag UID to the item it stands for under the given
// category. UIDs are matched case-insensitively.
func resolve(uid string, category Category) (Item, bool) {
	uid = strings.ToUpper(strings.TrimSpace(uid))

	var table map[string]Item
	switch category {
	case CategoryNumbers:
		table = numberUIDs
	case CategoryShapes:
		table = shapeUIDs
	default:
		table = letterUIDs
	}

	item, ok := table[uid]

	return item, ok
}

// wordFor returns the display word for a letter ("Apple" for "A"), so the
// client can speak "A for Apple". Presentation only; never judged.
func wordFor(letter Item) (string, bool) {
	word, ok := letterWords[letter]

	return word, ok
}

// parseCategory falls back to Letters on anything unrecognized.
func parseCategory(s string) Category {
	switch Category(s) {
	case CategoryLetters, CategoryNumbers, CategoryShapes:
		return Category(s)
	}

	return CategoryLetters
}
