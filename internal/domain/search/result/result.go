// Package result holds a single recipe search hit.
package result

import "math"

// Fallback strings for null recipe fields.
const (
	UnknownTitle   = "Unknown Recipe"
	NoTags         = "No tags"
	NoIngredients  = "No ingredients"
	NoInstructions = "No instructions"
)

// Result is a single search hit.
type Result struct {
	title        string
	tags         string
	ingredients  string
	instructions string
	imagePath    *string
	confidence   float64
}

// New creates a search result. imagePath is nil when no image was found.
func New(title, tags, ingredients, instructions string, imagePath *string, confidence float64) Result {
	return Result{
		title: title, tags: tags, ingredients: ingredients, instructions: instructions,
		imagePath: imagePath, confidence: confidence,
	}
}

// Title returns the recipe title.
func (r *Result) Title() string { return r.title }

// Tags returns the recipe tags.
func (r *Result) Tags() string { return r.tags }

// Ingredients returns the ingredient list.
func (r *Result) Ingredients() string { return r.ingredients }

// Instructions returns the cooking instructions.
func (r *Result) Instructions() string { return r.instructions }

// ImagePath returns the web-relative image path, or nil.
func (r *Result) ImagePath() *string { return r.imagePath }

// Confidence returns the score in percent.
func (r *Result) Confidence() float64 { return r.confidence }

// Confidence converts a cosine distance into a percentage rounded to one decimal.
// Distances above 1 give negative values; they are kept as is.
func Confidence(distance float64) float64 {
	return math.Round((1-distance)*1000) / 10
}
