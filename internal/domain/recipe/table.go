package recipe

// Table is the ordered recipe corpus. Row position is the recipe identifier shared
// with the neighbour index, so rows are never reordered after construction.
type Table struct {
	extraColumns []string
	recipes      []Recipe
}

// NewTable creates a table. extraColumns names passthrough columns in file order.
func NewTable(extraColumns []string, recipes []Recipe) *Table {
	return &Table{extraColumns: extraColumns, recipes: recipes}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.recipes) }

// At returns the recipe at row i. ok is false when i is out of range.
func (t *Table) At(i int) (Recipe, bool) {
	if i < 0 || i >= len(t.recipes) {
		return Recipe{}, false
	}
	return t.recipes[i], true
}

// ExtraColumns returns passthrough column names.
func (t *Table) ExtraColumns() []string { return t.extraColumns }

// Combined returns the combined text of every row, in row order.
func (t *Table) Combined() []string {
	docs := make([]string, len(t.recipes))
	for i := range t.recipes {
		docs[i] = t.recipes[i].Combined()
	}
	return docs
}

// Recipes returns all rows in order.
func (t *Table) Recipes() []Recipe { return t.recipes }
