package viewstate

import (
	"slices"

	"github.com/Veraticus/ledger/internal/category"
	"github.com/Veraticus/ledger/internal/model"
)

// CategoryBrowser is the state of the category management view.
type CategoryBrowser struct {
	Editing    *CategoryDraft
	Message    string
	LoadError  string
	Type       model.CategoryType
	Categories []model.Category
	Generation uint64
	Busy       bool
}

// NewCategoryBrowser starts on expense categories.
func NewCategoryBrowser() CategoryBrowser {
	return CategoryBrowser{Type: model.CategoryTypeExpense}
}

// Request returns the tag for a load of the selected type.
func (b CategoryBrowser) Request() CategoryRequest {
	return CategoryRequest{Generation: b.Generation, Type: b.Type}
}

// Apply returns the state after ev.
func (b CategoryBrowser) Apply(ev Event) CategoryBrowser {
	switch e := ev.(type) {
	case TypeSelected:
		if e.Type == b.Type {
			return b
		}
		b.Type = e.Type
		b.Generation++
		b.Categories = nil
		b.Editing = nil

	case CategoriesLoaded:
		if e.Request != b.Request() {
			return b
		}
		if e.Err != nil {
			b.LoadError = e.Err.Error()
			b.Message = "Error loading categories: " + e.Err.Error()
			return b
		}
		b.LoadError = ""
		b.Categories = slices.Clone(e.Categories)

	case EditStarted:
		c, ok := category.Find(b.Categories, e.ID)
		if !ok {
			return b
		}
		draft := DraftFromCategory(c)
		b.Editing = &draft

	case EditCancelled:
		b.Editing = nil

	case SubmitStarted:
		b.Busy = true

	case CategorySaved:
		b.Busy = false
		b.Editing = nil
		if e.Created {
			b.Message = "Category created successfully!"
		} else {
			b.Message = "Category updated successfully!"
		}

	case CategoryDeleted:
		b.Busy = false
		if b.Editing != nil && b.Editing.ID == e.ID {
			b.Editing = nil
		}
		b.Message = "Category deleted successfully!"

	case OperationFailed:
		b.Busy = false
		b.Message = "Error: " + e.Message

	case Notice:
		b.Message = e.Text
	}
	return b
}

// Tree returns the snapshot in display order.
func (b CategoryBrowser) Tree() ([]category.Entry, error) {
	return category.Flatten(b.Categories)
}

// ParentOptions returns the categories a new or edited category may nest under.
func (b CategoryBrowser) ParentOptions() []model.Category {
	return category.ParentOptions(b.Categories)
}
