// Package category turns a flat category snapshot into the two-level hierarchy
// shown by the selection lists and the category browser.
package category

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/ledger/internal/model"
)

const (
	// Indent is repeated once per depth level in labels.
	Indent = "  "
	// Branch marks every non-root entry.
	Branch = "└─ "
)

var (
	// ErrCycle is reported when parent references loop back on themselves.
	ErrCycle = errors.New("category parent cycle")
	// ErrTooDeep is reported when traversal exceeds the size of the input.
	ErrTooDeep = errors.New("category hierarchy deeper than input")
)

// StructureError names the category at which a malformed hierarchy was detected.
type StructureError struct {
	Err error
	ID  int64
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("category %d: %v", e.ID, e.Err)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// Entry is one row of the flattened tree.
type Entry struct {
	Category model.Category
	Depth    int
}

// Label returns the name prefixed with the indentation for its depth.
func (e Entry) Label() string {
	if e.Depth == 0 {
		return e.Category.Name
	}
	return strings.Repeat(Indent, e.Depth) + Branch + e.Category.Name
}

// Roots returns the categories without a parent, in input order.
func Roots(categories []model.Category) []model.Category {
	var roots []model.Category
	for _, c := range categories {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	return roots
}

// Children returns the direct children of parentID, in input order.
func Children(categories []model.Category, parentID int64) []model.Category {
	var children []model.Category
	for _, c := range categories {
		if c.Parent != nil && c.Parent.ID == parentID {
			children = append(children, c)
		}
	}
	return children
}

// ParentOptions returns the categories that may be chosen as a parent. Only
// roots qualify, which keeps the hierarchy at two levels.
func ParentOptions(categories []model.Category) []model.Category {
	return Roots(categories)
}

// Flatten walks the hierarchy depth-first in pre-order starting from each
// root. Categories whose parent is missing from the snapshot are not
// reachable and are left out. A parent cycle anywhere in the snapshot is
// reported instead of a partial result.
func Flatten(categories []model.Category) ([]Entry, error) {
	if err := CheckCycles(categories); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(categories))
	maxDepth := len(categories)

	var walk func(c model.Category, depth int) error
	walk = func(c model.Category, depth int) error {
		if depth > maxDepth {
			return &StructureError{ID: c.ID, Err: ErrTooDeep}
		}
		entries = append(entries, Entry{Category: c, Depth: depth})
		for _, child := range Children(categories, c.ID) {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range Roots(categories) {
		if err := walk(root, 0); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// CheckCycles follows every parent chain and fails on the first category
// that is reached twice. Chains ending at an id absent from the snapshot are
// not an error.
func CheckCycles(categories []model.Category) error {
	parentOf := make(map[int64]int64, len(categories))
	for _, c := range categories {
		if c.Parent != nil {
			parentOf[c.ID] = c.Parent.ID
		}
	}

	// 0 unvisited, 1 on current chain, 2 known to terminate
	state := make(map[int64]int, len(categories))
	for _, c := range categories {
		var chain []int64
		id := c.ID
		for {
			if s := state[id]; s == 2 {
				break
			} else if s == 1 {
				return &StructureError{ID: id, Err: ErrCycle}
			}
			state[id] = 1
			chain = append(chain, id)
			next, ok := parentOf[id]
			if !ok {
				break
			}
			id = next
		}
		for _, visited := range chain {
			state[visited] = 2
		}
	}
	return nil
}

// Path returns "Parent > Child" for nested categories and the bare name for
// roots. Missing parent details are looked up in snapshot; an unknown parent
// degrades to the bare name.
func Path(c model.TransactionCategory, snapshot []model.Category) string {
	parent := c.Parent
	if parent == nil {
		known, ok := Find(snapshot, c.ID)
		if !ok || known.Parent == nil {
			return c.Name
		}
		parent = known.Parent
	}
	parentName := parent.Name
	if parentName == "" {
		if p, ok := Find(snapshot, parent.ID); ok {
			parentName = p.Name
		}
	}
	if parentName == "" {
		return c.Name
	}
	return parentName + " > " + c.Name
}

// Find returns the category with id from the snapshot.
func Find(categories []model.Category, id int64) (model.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}
