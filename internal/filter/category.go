package filter

import (
	"fmt"
	"strings"
)

// Category identifies one independently tracked filter list.
type Category uint8

// Global categories are AND-combined into the query as groups. Main-parent
// categories apply to the main parent only and cap levels at [MainCap].
// Optional categories carry bare factor ids used for tie-break scoring.
const (
	Blue Category = iota
	Pink
	Green
	White
	MainBlue
	MainPink
	MainGreen
	MainWhite
	OptionalWhite
	OptionalMainWhite

	numCategories
)

// NumCategories is the number of tracked categories.
const NumCategories = int(numCategories)

// Level bounds. A level is always a single decimal digit.
const (
	MinLevel  = 1
	MaxLevel  = 9
	GlobalCap = 9
	MainCap   = 3
)

// Scope groups categories by how the compiler treats them.
type Scope uint8

const (
	ScopeGlobal Scope = iota
	ScopeMainParent
	ScopeOptional
)

// Color is the factor colour class a category draws its catalog from.
type Color uint8

const (
	ColorBlue Color = iota
	ColorPink
	ColorGreen
	ColorWhite
)

var categoryNames = [numCategories]string{
	Blue:              "blue",
	Pink:              "pink",
	Green:             "green",
	White:             "white",
	MainBlue:          "main-blue",
	MainPink:          "main-pink",
	MainGreen:         "main-green",
	MainWhite:         "main-white",
	OptionalWhite:     "optional-white",
	OptionalMainWhite: "optional-main-white",
}

var colorNames = [...]string{
	ColorBlue:  "blue",
	ColorPink:  "pink",
	ColorGreen: "green",
	ColorWhite: "white",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	all := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		all = append(all, c)
	}

	return all
}

// ParseCategory resolves a category name as typed by a user.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for c, n := range categoryNames {
		if n == name {
			return Category(c), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c < numCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}

	return categoryNames[c]
}

// Scope panics on an undeclared category.
func (c Category) Scope() Scope {
	c.mustValid()

	switch {
	case c <= White:
		return ScopeGlobal
	case c <= MainWhite:
		return ScopeMainParent
	default:
		return ScopeOptional
	}
}

// Color returns the catalog colour for c.
func (c Category) Color() Color {
	c.mustValid()

	switch c {
	case Blue, MainBlue:
		return ColorBlue
	case Pink, MainPink:
		return ColorPink
	case Green, MainGreen:
		return ColorGreen
	default:
		return ColorWhite
	}
}

// Cap is the highest level the compiler expands for c.
func (c Category) Cap() int {
	if c.Scope() == ScopeMainParent {
		return MainCap
	}

	return GlobalCap
}

// SingleValued reports whether the category holds at most one entry.
func (c Category) SingleValued() bool {
	return c == MainGreen
}

func (c Category) mustValid() {
	if !c.Valid() {
		panic(fmt.Sprintf("filter: undeclared category %d", uint8(c)))
	}
}

func (c Color) String() string {
	if int(c) >= len(colorNames) {
		return fmt.Sprintf("color(%d)", uint8(c))
	}

	return colorNames[c]
}

// ParseColor resolves a colour class name.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for c, n := range colorNames {
		if n == name {
			return Color(c), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}
