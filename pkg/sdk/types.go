package recipedex

// Encoding names the character set of a raw recipe CSV.
type Encoding string

// Supported raw CSV encodings.
const (
	Latin1 Encoding = "latin1"
	UTF8   Encoding = "utf8"
)

// Result is a single search hit.
type Result struct {
	Title        string
	Tags         string
	Ingredients  string
	Instructions string
	ImagePath    *string // nil when no image file was found
	Confidence   float64 // (1 - cosine distance) * 100, one decimal
}

// TrainReport summarizes a training run.
type TrainReport struct {
	Recipes    int
	Vocabulary int
}
