package result

import "testing"

func TestNew(t *testing.T) {
	img := "images/cake.jpg"
	r := New("Cake", "dessert", "flour", "bake", &img, 87.5)

	if r.Title() != "Cake" {
		t.Errorf("Title() = %q", r.Title())
	}
	if r.Tags() != "dessert" {
		t.Errorf("Tags() = %q", r.Tags())
	}
	if r.Ingredients() != "flour" {
		t.Errorf("Ingredients() = %q", r.Ingredients())
	}
	if r.Instructions() != "bake" {
		t.Errorf("Instructions() = %q", r.Instructions())
	}
	if r.ImagePath() == nil || *r.ImagePath() != img {
		t.Errorf("ImagePath() = %v", r.ImagePath())
	}
	if r.Confidence() != 87.5 {
		t.Errorf("Confidence() = %f", r.Confidence())
	}
}

func TestNew_NoImage(t *testing.T) {
	r := New("t", NoTags, NoIngredients, NoInstructions, nil, 0)
	if r.ImagePath() != nil {
		t.Errorf("ImagePath() = %v, want nil", r.ImagePath())
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 100},
		{1, 0},
		{0.25, 75},
		{0.12345, 87.7},
		{0.0004, 100},
		{1.5, -50},
	}
	for _, tc := range tests {
		if got := Confidence(tc.distance); got != tc.want {
			t.Errorf("Confidence(%v) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}
