package bibtex

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_resolve(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Entry
	}{
		{
			name: "inproceedings",
			src: `
				@inproceedings{canonne2020learning,
				  title={Learning from satisfying assignments under {Continuous} distributions},
				  author={Canonne {Foo}, Clement L and De, Anindya and Servedio, Rocco A},
				  booktitle={Proceedings of the Fourteenth Annual ACM-SIAM Symposium on Discrete Algorithms},
				  pages={82--101},
				  year={2020},
				  organization={SIAM}
			  }`,
			want: Entry{
				Type:   EntryInProceedings,
				Key:    "canonne2020learning",
				Author: []Author{author("Clement L", "Canonne Foo"), author("Anindya", "De"), author("Rocco A", "Servedio")},
				Tags: map[Field]string{
					"booktitle":    "Proceedings of the Fourteenth Annual ACM-SIAM Symposium on Discrete Algorithms",
					"organization": "SIAM",
					"pages":        "82--101",
					"title":        "Learning from satisfying assignments under Continuous distributions",
					"year":         "2020",
				},
			},
		},
		{
			name: "book linear algebra",
			src: `
				@book{greub2012linear,
				  title={Linear algebra},
				  author={Greub, Werner H},
				  volume={23},
				  year={2012},
				  publisher={Springer Science \& Business Media}
				}`,
			want: Entry{
				Type:   EntryBook,
				Key:    "greub2012linear",
				Author: []Author{author("Werner H", "Greub")},
				Tags: map[Field]string{
					"title":     "Linear algebra",
					"publisher": "Springer Science & Business Media",
					"year":      "2012",
					"volume":    "23",
				},
			},
		},
		{
			name: "book with only title",
			src:  `@book{citekey, title={Foo \& Bar \$1} }`,
			want: Entry{Type: EntryBook, Key: "citekey", Tags: map[Field]string{"title": "Foo & Bar $1"}},
		},
		{
			name: "article with math title",
			src:  `@article{citekey, title={formula $e=mc^2$} }`,
			want: Entry{Type: EntryArticle, Key: "citekey", Tags: map[Field]string{"title": "formula $e=mc^2$"}},
		},
		{
			name: "article with url",
			src:  `@article{cite_key, url = "https://example.com/foo--bar/baz/#" }`,
			want: Entry{Type: EntryArticle, Key: "cite_key", Tags: map[Field]string{"url": "https://example.com/foo--bar/baz/#"}},
		},
		{
			name: "string abbreviation reference",
			src: `
				@string{acm = "Association for Computing Machinery"}
				@inproceedings{citekey, organization = acm}`,
			want: Entry{Type: EntryInProceedings, Key: "citekey", Tags: map[Field]string{"organization": "Association for Computing Machinery"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bib := New()
			file, err := bib.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			entries, err := bib.Resolve(file)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Fatalf("expected exactly 1 entry, got %d entries", len(entries))
			}

			if diff := cmp.Diff(tt.want, entries[0]); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func ExampleNew_renderToString() {
	input := `
    @book{greub2012linear,
      title={Linear algebra},
      author={Greub, {WERNER} H},
      volume={23},
      year={2012},
      publisher={Springer Science \& Business Media}
    }

    @inproceedings{francese2015model,
      title={Model-driven development for multi-platform mobile applications},
      author={Francese, Rita and Risi, Michele and Scanniello, Giuseppe and Tortora, Genoveffa},
      booktitle={Product-Focused Software Process Improvement: 16th International Conference, PROFES 2015, Bolzano, Italy, December 2-4, 2015, Proceedings 16},
      pages={61--67},
      year={2015},
      organization={Springer}
    }`

	bib := New()

	file, err := bib.Parse(strings.NewReader(input))
	if err != nil {
		panic(err.Error())
	}
	entries, err := bib.Resolve(file)
	if err != nil {
		panic(err.Error())
	}

	type EntryOutput struct {
		Type string
		Key  string
		Tags []string
	}
	entryOutputs := make([]EntryOutput, 0, len(entries))
	for _, entry := range entries {
		tags := make([]string, 0, len(entry.Tags)+len(entry.Author))
		for _, a := range entry.Author {
			name := strings.Join(strings.Fields(fmt.Sprintf("%s %s %s %s", a.First, a.Prefix, a.Last, a.Suffix)), " ")
			tags = append(tags, "author: "+name)
		}
		for field, val := range entry.Tags {
			tags = append(tags, fmt.Sprintf("%s: %s", field, val))
		}
		sort.Strings(tags)
		entryOutputs = append(entryOutputs, EntryOutput{
			Type: entry.Type,
			Key:  entry.Key,
			Tags: tags,
		})
	}

	for _, out := range entryOutputs {
		fmt.Printf("type: %s\n", out.Type)
		fmt.Printf("key: %s\n", out.Key)
		for _, tag := range out.Tags {
			fmt.Println(tag)
		}
		fmt.Println()
	}

	// Output:
	// type: book
	// key: greub2012linear
	// author: WERNER H Greub
	// publisher: Springer Science & Business Media
	// title: Linear algebra
	// volume: 23
	// year: 2012
	//
	// type: inproceedings
	// key: francese2015model
	// author: Genoveffa Tortora
	// author: Giuseppe Scanniello
	// author: Michele Risi
	// author: Rita Francese
	// booktitle: Product-Focused Software Process Improvement: 16th International Conference, PROFES 2015, Bolzano, Italy, December 2-4, 2015, Proceedings 16
	// organization: Springer
	// pages: 61--67
	// title: Model-driven development for multi-platform mobile applications
	// year: 2015
	//
}
