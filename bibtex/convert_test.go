package bibtex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jschaf/citeproc/reference"
)

func TestToReference(t *testing.T) {
	e := Entry{
		Type:   EntryInProceedings,
		Key:    "canonne2020learning",
		Author: []Author{author("Clement L", "Canonne")},
		Tags: map[Field]string{
			"booktitle": "Proceedings of SODA",
			"pages":     "82-101",
			"year":      "2020",
			"month":     "jan",
		},
	}
	got := ToReference(e)

	want := reference.New("canonne2020learning", "paper-conference")
	want.Names[reference.NameAuthor] = []reference.Name{{Family: "Canonne", Given: "Clement L"}}
	want.Ordinary[reference.VarContainerTitle] = "Proceedings of SODA"
	want.Number[reference.NumPage] = reference.NewNumericValue("82-101")
	want.Dates[reference.DateIssued] = reference.NewSingleDate(reference.Date{Year: 2020, Month: 1})

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToReference() mismatch (-want +got):\n%s", diff)
	}
}

func TestToReference_unknownEntryTypeFallsBackToDocument(t *testing.T) {
	got := ToReference(Entry{Type: "weirdtype", Key: "x"})
	if got.Type != "document" {
		t.Errorf("Type = %q, want %q", got.Type, "document")
	}
}

func TestToReference_etAl(t *testing.T) {
	e := Entry{
		Type:       EntryArticle,
		Key:        "x",
		Author:     []Author{author("J", "Smith")},
		AuthorEtAl: true,
	}
	got := ToReference(e)
	names := got.Names[reference.NameAuthor]
	if len(names) != 2 || !names[1].IsLiteral || names[1].Literal != "et al." {
		t.Errorf("Names[author] = %+v, want trailing literal \"et al.\" entry", names)
	}
}
