package recipe

import "testing"

func TestText(t *testing.T) {
	if Null().Valid() {
		t.Error("Null().Valid() = true")
	}
	if got := Null().Or("No tags"); got != "No tags" {
		t.Errorf("Null().Or() = %q", got)
	}
	if got := Some("").Or("fallback"); got != "" {
		t.Errorf("Some(\"\").Or() = %q, want empty", got)
	}
	if got := Some("vegan").String(); got != "vegan" {
		t.Errorf("String() = %q", got)
	}
}

func TestCombined(t *testing.T) {
	tests := []struct {
		name string
		r    Recipe
		want string
	}{
		{
			name: "all fields",
			r:    New(Some("Cake"), Some("flour"), Some("bake"), Some("dessert"), Some("cake-1")),
			want: "Cake flour bake dessert",
		},
		{
			name: "null fields keep separators",
			r:    New(Some("Cake"), Null(), Some("bake"), Null(), Null()),
			want: "Cake  bake ",
		},
		{
			name: "all null",
			r:    New(Null(), Null(), Null(), Null(), Null()),
			want: "   ",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Combined(); got != tc.want {
				t.Errorf("Combined() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTable_At(t *testing.T) {
	tbl := NewTable(nil, []Recipe{
		New(Some("a"), Null(), Null(), Null(), Null()),
		New(Some("b"), Null(), Null(), Null(), Null()),
	})

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d", tbl.Len())
	}
	r, ok := tbl.At(1)
	if !ok || r.Title().String() != "b" {
		t.Errorf("At(1) = %q, %v", r.Title().String(), ok)
	}
	if _, ok := tbl.At(2); ok {
		t.Error("At(2) should be out of range")
	}
	if _, ok := tbl.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
	docs := tbl.Combined()
	if len(docs) != 2 || docs[0] != "a   " {
		t.Errorf("Combined() = %q", docs)
	}
}
