package table

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kailas-cloud/recipedex/internal/domain"
)

const rawCSV = `Unnamed: 0,Title,Ingredients,Instructions,Tags,Image_Name,Cleaned_Ingredients
0,Chocolate Cake,"flour, cocoa","Mix.
Bake.",dessert,chocolate-cake,x
1,Plain Rice,rice,Boil.,,plain-rice,y
2,,,,,,
`

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(rawCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	extra := tbl.ExtraColumns()
	if len(extra) != 2 || extra[0] != "Unnamed: 0" || extra[1] != "Cleaned_Ingredients" {
		t.Errorf("ExtraColumns() = %q", extra)
	}

	r, _ := tbl.At(0)
	if r.Title().String() != "Chocolate Cake" {
		t.Errorf("Title = %q", r.Title().String())
	}
	if r.Instructions().String() != "Mix.\nBake." {
		t.Errorf("Instructions = %q", r.Instructions().String())
	}

	r, _ = tbl.At(1)
	if r.Tags().Valid() {
		t.Error("empty Tags cell must read as null")
	}
	if r.Combined() != "Plain Rice rice Boil. " {
		t.Errorf("Combined = %q", r.Combined())
	}

	r, _ = tbl.At(2)
	if r.Title().Valid() || r.ImageName().Valid() {
		t.Error("empty row must read as nulls")
	}
}

func TestRead_MissingColumn(t *testing.T) {
	in := "Title,Ingredients,Instructions,Image_Name\na,b,c,d\n"
	_, err := Read(strings.NewReader(in))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	var mce *domain.MissingColumnError
	if !errors.As(err, &mce) || mce.Column != "Tags" {
		t.Errorf("expected missing Tags, got %v", err)
	}
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestRead_ShortAndLongRows(t *testing.T) {
	short := "Title,Ingredients,Instructions,Tags,Image_Name\nSoup,water\n"
	tbl, err := Read(strings.NewReader(short))
	if err != nil {
		t.Fatalf("short row: %v", err)
	}
	r, _ := tbl.At(0)
	if r.Ingredients().String() != "water" || r.Tags().Valid() {
		t.Errorf("short row padded wrongly: %q %v", r.Ingredients().String(), r.Tags().Valid())
	}

	long := "Title,Ingredients,Instructions,Tags,Image_Name\na,b,c,d,e,f\n"
	if _, err := Read(strings.NewReader(long)); err == nil {
		t.Fatal("expected error for row with too many fields")
	}
}

func TestRead_UTF8BOM(t *testing.T) {
	in := "\xEF\xBB\xBFTitle,Ingredients,Instructions,Tags,Image_Name\na,b,c,d,e\n"
	if _, err := Read(strings.NewReader(in)); err != nil {
		t.Fatalf("Read with BOM: %v", err)
	}
}

func TestDecoder_Latin1(t *testing.T) {
	// "Crème" in ISO-8859-1.
	raw := []byte("Title,Ingredients,Instructions,Tags,Image_Name\nCr\xe8me,a,b,c,d\n")
	r, err := Decoder(bytes.NewReader(raw), EncodingLatin1)
	if err != nil {
		t.Fatalf("Decoder: %v", err)
	}
	tbl, err := Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	rec, _ := tbl.At(0)
	if rec.Title().String() != "Crème" {
		t.Errorf("Title = %q, want Crème", rec.Title().String())
	}
}

func TestDecoder_Unsupported(t *testing.T) {
	if _, err := Decoder(io.LimitReader(nil, 0), "ebcdic"); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}

func TestWriteRead_PreservesRowOrder(t *testing.T) {
	tbl, err := Read(strings.NewReader(rawCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Unnamed: 0,Cleaned_Ingredients,Title,Ingredients,Instructions,Tags,Image_Name,combined\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	reloaded, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read written table: %v", err)
	}
	if reloaded.Len() != tbl.Len() {
		t.Fatalf("Len() = %d, want %d", reloaded.Len(), tbl.Len())
	}
	for i := 0; i < tbl.Len(); i++ {
		a, _ := tbl.At(i)
		b, _ := reloaded.At(i)
		if a.Combined() != b.Combined() {
			t.Errorf("row %d: combined %q != %q", i, a.Combined(), b.Combined())
		}
		if a.Title() != b.Title() || a.Tags() != b.Tags() || a.ImageName() != b.ImageName() {
			t.Errorf("row %d changed after round trip", i)
		}
	}
}
