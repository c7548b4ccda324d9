package category

import (
	"testing"

	"github.com/Veraticus/ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(id int64, name string, parent int64) model.Category {
	c := model.Category{ID: id, Name: name, Type: model.CategoryTypeExpense}
	if parent != 0 {
		c.Parent = &model.CategoryRef{ID: parent}
	}
	return c
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Category.Name
	}
	return out
}

func TestRootsAndChildren(t *testing.T) {
	categories := []model.Category{
		cat(3, "Transport", 0),
		cat(2, "Groceries", 1),
		cat(1, "Food", 0),
		cat(4, "Restaurants", 1),
		cat(5, "Fuel", 3),
	}

	roots := Roots(categories)
	require.Len(t, roots, 2)
	assert.Equal(t, "Transport", roots[0].Name)
	assert.Equal(t, "Food", roots[1].Name)

	children := Children(categories, 1)
	require.Len(t, children, 2)
	assert.Equal(t, "Groceries", children[0].Name)
	assert.Equal(t, "Restaurants", children[1].Name)

	assert.Empty(t, Children(categories, 99))
	assert.Equal(t, roots, ParentOptions(categories))
}

func TestFlatten(t *testing.T) {
	t.Run("two level example", func(t *testing.T) {
		entries, err := Flatten([]model.Category{
			cat(1, "Food", 0),
			cat(2, "Groceries", 1),
		})
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "Food", entries[0].Category.Name)
		assert.Equal(t, 0, entries[0].Depth)
		assert.Equal(t, "Food", entries[0].Label())

		assert.Equal(t, "Groceries", entries[1].Category.Name)
		assert.Equal(t, 1, entries[1].Depth)
		assert.Equal(t, "  └─ Groceries", entries[1].Label())
	})

	t.Run("pre-order with children after parents", func(t *testing.T) {
		categories := []model.Category{
			cat(5, "Fuel", 3),
			cat(2, "Groceries", 1),
			cat(1, "Food", 0),
			cat(3, "Transport", 0),
			cat(6, "Organic", 2),
			cat(4, "Restaurants", 1),
		}
		entries, err := Flatten(categories)
		require.NoError(t, err)
		assert.Equal(t, []string{"Food", "Groceries", "Organic", "Restaurants", "Transport", "Fuel"}, names(entries))
		assert.Equal(t, "    └─ Organic", entries[2].Label())

		// every node exactly once, parent first
		position := map[int64]int{}
		for i, e := range entries {
			_, dup := position[e.Category.ID]
			assert.False(t, dup, "category %d visited twice", e.Category.ID)
			position[e.Category.ID] = i
		}
		assert.Len(t, position, len(categories))
		for _, e := range entries {
			if e.Category.Parent != nil {
				assert.Less(t, position[e.Category.Parent.ID], position[e.Category.ID])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		entries, err := Flatten(nil)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("orphans are skipped", func(t *testing.T) {
		entries, err := Flatten([]model.Category{cat(1, "Food", 0), cat(2, "Lost", 42)})
		require.NoError(t, err)
		assert.Equal(t, []string{"Food"}, names(entries))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		categories := []model.Category{cat(2, "Groceries", 1), cat(1, "Food", 0)}
		_, err := Flatten(categories)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", categories[0].Name)
		assert.Equal(t, int64(1), categories[0].Parent.ID)
	})
}

func TestFlatten_Cycles(t *testing.T) {
	tests := []struct {
		name       string
		categories []model.Category
	}{
		{name: "self parent", categories: []model.Category{cat(1, "Loop", 1)}},
		{name: "pair without roots", categories: []model.Category{cat(1, "A", 2), cat(2, "B", 1)}},
		{
			name: "cycle beside a valid tree",
			categories: []model.Category{
				cat(1, "Food", 0),
				cat(2, "Groceries", 1),
				cat(3, "A", 5),
				cat(4, "B", 3),
				cat(5, "C", 4),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Flatten(tt.categories)
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.ErrorIs(t, err, ErrCycle)

			var structErr *StructureError
			require.ErrorAs(t, err, &structErr)
			assert.NotZero(t, structErr.ID)
		})
	}
}

func TestPath(t *testing.T) {
	snapshot := []model.Category{cat(1, "Food", 0), cat(2, "Groceries", 1)}

	tests := []struct {
		name string
		in   model.TransactionCategory
		want string
	}{
		{name: "root", in: model.TransactionCategory{ID: 1, Name: "Food"}, want: "Food"},
		{
			name: "embedded parent name",
			in:   model.TransactionCategory{ID: 2, Name: "Groceries", Parent: &model.CategoryRef{ID: 1, Name: "Food"}},
			want: "Food > Groceries",
		},
		{
			name: "parent looked up",
			in:   model.TransactionCategory{ID: 2, Name: "Groceries", Parent: &model.CategoryRef{ID: 1}},
			want: "Food > Groceries",
		},
		{
			name: "parent recovered from snapshot",
			in:   model.TransactionCategory{ID: 2, Name: "Groceries"},
			want: "Food > Groceries",
		},
		{
			name: "unknown parent",
			in:   model.TransactionCategory{ID: 7, Name: "Misc", Parent: &model.CategoryRef{ID: 99}},
			want: "Misc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Path(tt.in, snapshot))
		})
	}
}

func TestFind(t *testing.T) {
	snapshot := []model.Category{cat(1, "Food", 0)}
	got, ok := Find(snapshot, 1)
	assert.True(t, ok)
	assert.Equal(t, "Food", got.Name)

	_, ok = Find(snapshot, 2)
	assert.False(t, ok)
}
