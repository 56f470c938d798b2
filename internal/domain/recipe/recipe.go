// Package recipe holds the recipe record and the ordered recipe table.
package recipe

import "strings"

// Column names of the recipe table.
const (
	ColumnTitle        = "Title"
	ColumnIngredients  = "Ingredients"
	ColumnInstructions = "Instructions"
	ColumnTags         = "Tags"
	ColumnImageName    = "Image_Name"
	ColumnCombined     = "combined"
)

// RequiredColumns must be present in every raw recipe table.
var RequiredColumns = []string{
	ColumnTitle, ColumnIngredients, ColumnInstructions, ColumnTags, ColumnImageName,
}

// Recipe is one row of the recipe table.
type Recipe struct {
	title        Text
	ingredients  Text
	instructions Text
	tags         Text
	imageName    Text
	extra        []Text
}

// New creates a recipe. extra holds passthrough columns aligned with Table.ExtraColumns.
func New(title, ingredients, instructions, tags, imageName Text, extra ...Text) Recipe {
	return Recipe{
		title:        title,
		ingredients:  ingredients,
		instructions: instructions,
		tags:         tags,
		imageName:    imageName,
		extra:        extra,
	}
}

// Title returns the recipe title.
func (r *Recipe) Title() Text { return r.title }

// Ingredients returns the ingredient list.
func (r *Recipe) Ingredients() Text { return r.ingredients }

// Instructions returns the cooking instructions.
func (r *Recipe) Instructions() Text { return r.instructions }

// Tags returns the recipe tags.
func (r *Recipe) Tags() Text { return r.tags }

// ImageName returns the image base name.
func (r *Recipe) ImageName() Text { return r.imageName }

// Extra returns passthrough column values.
func (r *Recipe) Extra() []Text { return r.extra }

// Combined joins title, ingredients, instructions and tags with single spaces.
// Null fields contribute an empty string, so separators are always present.
func (r *Recipe) Combined() string {
	return strings.Join([]string{
		r.title.String(),
		r.ingredients.String(),
		r.instructions.String(),
		r.tags.String(),
	}, " ")
}
