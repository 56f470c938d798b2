package recipe

// Text is a nullable text cell of the recipe table.
type Text struct {
	value string
	valid bool
}

// Some returns a non-null Text.
func Some(s string) Text { return Text{value: s, valid: true} }

// Null returns a null Text.
func Null() Text { return Text{} }

// Valid reports whether the value is present.
func (t Text) Valid() bool { return t.valid }

// String returns the value, or "" for null.
func (t Text) String() string { return t.value }

// Or returns the value, or fallback for null.
func (t Text) Or(fallback string) string {
	if !t.valid {
		return fallback
	}
	return t.value
}
