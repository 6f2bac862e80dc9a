package embednet

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const smallTable = `pear 0.8 0.1
apple 1.0   0.0

banana	0.2 1.0
`

func readEmbeddingsOrFail(t *testing.T, data string) *Embeddings {
	emb, err := ReadEmbeddings(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	return emb
}

func TestBasicEmpty(t *testing.T) {
	emb := NewEmbeddings()

	if emb.Len() != 0 {
		t.Errorf("Embeddings should have size 0, was %d", emb.Len())
	}

	emb.Put("apple", Vector{1.0, 0.0})
	emb.Put("pear", Vector{0.8, 0.1})
	emb.Put("banana", Vector{0.2, 1.0})

	if emb.Len() != 3 {
		t.Errorf("Embeddings should have size 3, was %d", emb.Len())
	}

	if emb.Dims() != 2 {
		t.Errorf("Vector size should be 2, was %d", emb.Dims())
	}
}

func TestReadEmbeddings(t *testing.T) {
	emb := readEmbeddingsOrFail(t, smallTable)

	if emb.Len() != 3 {
		t.Errorf("Embeddings should have size 3, was %d", emb.Len())
	}

	if emb.Dims() != 2 {
		t.Errorf("Vector size should be 2, was %d", emb.Dims())
	}

	if _, ok := emb.Vector("Bogus"); ok {
		t.Error("An unknown word should return ok==false")
	}

	vec, ok := emb.Vector("banana")
	if !ok {
		t.Fatal("A known word should return ok==true")
	}

	if !reflect.DeepEqual(vec, Vector{0.2, 1.0}) {
		t.Errorf("Vector of 'banana' should be [0.2 1], was %v", vec)
	}
}

func TestWordOrder(t *testing.T) {
	emb := readEmbeddingsOrFail(t, smallTable)

	if got, want := emb.Words(OrderSorted), []string{"apple", "banana", "pear"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted words should be %v, were %v", want, got)
	}

	if got, want := emb.Words(OrderFile), []string{"pear", "apple", "banana"}; !reflect.DeepEqual(got, want) {
		t.Errorf("File-order words should be %v, were %v", want, got)
	}
}

func TestDuplicatesLastWins(t *testing.T) {
	emb := readEmbeddingsOrFail(t, "a 1 0\nb 0 1\na 0.5 0.5\n")

	if emb.Len() != 2 {
		t.Errorf("Embeddings should have size 2, was %d", emb.Len())
	}

	if emb.Duplicates() != 1 {
		t.Errorf("Duplicates should be 1, was %d", emb.Duplicates())
	}

	if vec, _ := emb.Vector("a"); !reflect.DeepEqual(vec, Vector{0.5, 0.5}) {
		t.Errorf("The last vector of 'a' should win, got %v", vec)
	}

	if got := emb.Words(OrderFile); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("A duplicate should keep its first position, got %v", got)
	}
}

func TestReadEmbeddingsParseError(t *testing.T) {
	emb, err := ReadEmbeddings(strings.NewReader("a 1 0\nb 0 x1\n"))
	if emb != nil {
		t.Error("No partial table should be returned")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Error should be a ParseError, was: %v", err)
	}

	if parseErr.Line != 2 || parseErr.Token != "x1" {
		t.Errorf("ParseError should be for line 2, token 'x1', was line %d, token %q", parseErr.Line, parseErr.Token)
	}
}

func TestReadEmbeddingsDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		word string
		line int
		err  error
	}{
		{"longer vector", "a 1 0\nb 0 1 1\n", "b", 2, ErrDimensionMismatch},
		{"no coordinates", "a 1 0\n\nb\n", "b", 3, ErrDimensionMismatch},
		{"NaN", "a 1 0\nb NaN 1\n", "b", 2, ErrNonFinite},
		{"infinity", "a 1 +Inf\n", "a", 1, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEmbeddings(strings.NewReader(tt.data))

			var domainErr *DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("Error should be a DomainError, was: %v", err)
			}

			if domainErr.Word != tt.word || domainErr.Line != tt.line {
				t.Errorf("DomainError should be for %q on line %d, was %q on line %d",
					tt.word, tt.line, domainErr.Word, domainErr.Line)
			}

			if !errors.Is(err, tt.err) {
				t.Errorf("Error should wrap %v, was: %v", tt.err, err)
			}
		})
	}
}

func TestPutDimensionMismatch(t *testing.T) {
	emb := NewEmbeddings()
	if err := emb.Put("a", Vector{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	err := emb.Put("b", Vector{1, 2})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Put should fail with ErrDimensionMismatch, was: %v", err)
	}

	if emb.Len() != 1 {
		t.Errorf("A rejected vector should not be added, size is %d", emb.Len())
	}
}

func TestLoadEmbeddings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(smallTable), 0644); err != nil {
		t.Fatal(err)
	}

	emb, err := LoadEmbeddings(path)
	if err != nil {
		t.Fatalf("LoadEmbeddings error should be nil, was: %s", err)
	}

	if emb.Len() != 3 {
		t.Errorf("Embeddings should have size 3, was %d", emb.Len())
	}

	if _, err := LoadEmbeddings(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Loading a missing file should fail with ErrNotExist, was: %v", err)
	}
}

func TestParseOrder(t *testing.T) {
	for _, s := range []string{"sorted", "file"} {
		order, err := ParseOrder(s)
		if err != nil {
			t.Fatalf("ParseOrder(%q) error: %v", s, err)
		}
		if order.String() != s {
			t.Errorf("ParseOrder(%q).String() = %q", s, order.String())
		}
	}

	if _, err := ParseOrder("random"); err == nil {
		t.Error("ParseOrder should reject unknown orders")
	}
}
