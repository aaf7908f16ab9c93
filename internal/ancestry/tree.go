// Package ancestry manages the fixed seven-node pedigree tree used to narrow
// a search to a target entity, its parents and its grandparents.
//
// The tree never holds two identities of the same family line at once;
// see [Tree.Assign].
package ancestry

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot addresses one node of the tree. Slots are laid out in the order the
// state codec persists them.
type Slot int

const (
	Target Slot = iota
	Parent1
	Parent1Grandparent1
	Parent1Grandparent2
	Parent2
	Parent2Grandparent1
	Parent2Grandparent2

	// NumSlots is the fixed size of the tree.
	NumSlots = 7
)

// familyDivisor groups identities into family lines: two identities with
// the same id/familyDivisor are the same family line.
const familyDivisor = 100

var slotNames = [NumSlots]string{
	Target:              "target",
	Parent1:             "p1",
	Parent1Grandparent1: "p1.1",
	Parent1Grandparent2: "p1.2",
	Parent2:             "p2",
	Parent2Grandparent1: "p2.1",
	Parent2Grandparent2: "p2.2",
}

var layerPlaceholders = [...]string{
	0: "Select target",
	1: "Select parent",
	2: "Select grandparent",
}

// Slots returns every slot in persistence order.
func Slots() []Slot {
	all := make([]Slot, NumSlots)
	for i := range all {
		all[i] = Slot(i)
	}

	return all
}

// ParseSlot resolves a slot name ("target", "p1", "p1.2", ...) or its
// numeric position.
func ParseSlot(name string) (Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}

	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < NumSlots {
		return Slot(n), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}

// Valid reports whether s addresses a node.
func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}

	return slotNames[s]
}

// Layer is 0 for the target, 1 for parents and 2 for grandparents.
func (s Slot) Layer() int {
	s.mustValid()

	switch s {
	case Target:
		return 0
	case Parent1, Parent2:
		return 1
	default:
		return 2
	}
}

// Children returns the direct descendants of s.
func (s Slot) Children() []Slot {
	s.mustValid()

	switch s {
	case Target:
		return []Slot{Parent1, Parent2}
	case Parent1:
		return []Slot{Parent1Grandparent1, Parent1Grandparent2}
	case Parent2:
		return []Slot{Parent2Grandparent1, Parent2Grandparent2}
	default:
		return nil
	}
}

func (s Slot) mustValid() {
	if !s.Valid() {
		panic(fmt.Sprintf("ancestry: slot %d out of range", int(s)))
	}
}

// Family returns the family line of an identity.
func Family(identity int) int {
	return identity / familyDivisor
}

// Profile is the display data the character catalog holds for an identity.
type Profile struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

// Characters resolves identities to display data.
type Characters interface {
	Character(id int) (Profile, bool)
}

// Node is one position of the tree. Name and Image are a display cache
// derived from Identity and are not part of the durable state.
type Node struct {
	Identity int
	Name     string
	Image    string
}

// Empty reports whether no identity is assigned.
func (n Node) Empty() bool {
	return n.Identity <= 0
}

// Tree is the seven-node pedigree. The zero value is not usable; call
// [NewTree].
type Tree struct {
	nodes [NumSlots]Node
}

// NewTree returns a tree with every node empty.
func NewTree() *Tree {
	t := &Tree{}
	for _, s := range Slots() {
		t.nodes[s] = placeholder(s)
	}

	return t
}

// Assign sets the identity of slot s.
//
// Every other node holding the same family line is cleared together with
// its entire subtree before the write. Display fields are looked up in
// chars; a miss falls back to "ID: <n>". An identity <= 0 clears s.
func (t *Tree) Assign(s Slot, identity int, chars Characters) {
	s.mustValid()

	if identity <= 0 {
		t.Clear(s)

		return
	}

	family := Family(identity)

	for _, other := range Slots() {
		if other == s {
			continue
		}

		n := t.nodes[other]
		if !n.Empty() && Family(n.Identity) == family {
			t.Clear(other)
		}
	}

	t.nodes[s] = resolve(identity, chars)
}

// Clear resets s and all of its descendants. Siblings are untouched.
func (t *Tree) Clear(s Slot) {
	s.mustValid()

	t.nodes[s] = placeholder(s)

	for _, child := range s.Children() {
		t.Clear(child)
	}
}

// Node returns a copy of the node at s.
func (t *Tree) Node(s Slot) Node {
	s.mustValid()

	return t.nodes[s]
}

// Identities returns the identity of every slot, 0 for empty slots.
func (t *Tree) Identities() [NumSlots]int {
	var ids [NumSlots]int
	for i, n := range t.nodes {
		if !n.Empty() {
			ids[i] = n.Identity
		}
	}

	return ids
}

// IsEmpty reports whether no slot holds an identity.
func (t *Tree) IsEmpty() bool {
	for _, n := range t.nodes {
		if !n.Empty() {
			return false
		}
	}

	return true
}

// Refresh re-derives every node's display fields from chars.
func (t *Tree) Refresh(chars Characters) {
	for i, n := range t.nodes {
		if n.Empty() {
			continue
		}

		t.nodes[i] = resolve(n.Identity, chars)
	}
}

// Clone returns an independent copy.
func (t *Tree) Clone() *Tree {
	c := *t

	return &c
}

// Scalars is the projection of the tree the query compiler consumes.
// Zero means unset.
type Scalars struct {
	Target           int
	MainParent       int
	MainGrandparent1 int
	MainGrandparent2 int
}

// DeriveScalars projects the tree into query scalars.
//
// Only the main parent's grandparents are projected. The second parent's
// grandparents are tracked in the tree but the backend query has no field
// for them.
func (t *Tree) DeriveScalars() Scalars {
	ids := t.Identities()

	return Scalars{
		Target:           ids[Target],
		MainParent:       ids[Parent1],
		MainGrandparent1: ids[Parent1Grandparent1],
		MainGrandparent2: ids[Parent1Grandparent2],
	}
}

// Label is the display text for an identity, falling back to "ID: <n>".
func Label(identity int, chars Characters) string {
	return resolve(identity, chars).Name
}

func resolve(identity int, chars Characters) Node {
	n := Node{Identity: identity, Name: fmt.Sprintf("ID: %d", identity)}

	if chars == nil {
		return n
	}

	if p, ok := chars.Character(identity); ok {
		if p.Name != "" {
			n.Name = p.Name
		}

		n.Image = p.Image
	}

	return n
}

func placeholder(s Slot) Node {
	return Node{Name: layerPlaceholders[s.Layer()]}
}
