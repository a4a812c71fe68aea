package parser

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/accio/internal/errors"
	"github.com/mcncl/accio/value"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if root.Kind() != value.KindObject {
		t.Fatalf("Parse() root kind = %s, want object", root.Kind())
	}

	want := `{"name":"John Doe","age":30,"isStudent":false,"city":null}`
	if got := root.String(); got != want {
		t.Errorf("Parse() root = %s, want %s", got, want)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if !root.IsArray() {
		t.Errorf("Parse() root kind = %s, want array", root.Kind())
	}
	if root.Len() != 5 {
		t.Errorf("Parse() root length = %d, want 5", root.Len())
	}
	if got := root.String(); got != `[1,"test",true,null,3.14]` {
		t.Errorf("Parse() root = %s", got)
	}
}

func TestParse_NestedObject(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	name, ok := root.Lookup("user").Lookup("name").AsString()
	if !ok || name != "Jane Doe" {
		t.Errorf("user.name = %q, want %q", name, "Jane Doe")
	}
	if tag, _ := root.Lookup("tags").Lookup("1").AsString(); tag != "json" {
		t.Errorf("tags[1] = %q, want %q", tag, "json")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n\t"} {
		_, err := Parse(strings.NewReader(input))
		if err == nil {
			t.Fatalf("Parse(%q) err = nil, want error", input)
		}
		if !stderrors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("Parse(%q) err = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   "} {
		_, err := ParseString(input)
		if err == nil {
			t.Fatalf("ParseString(%q) err = nil, want error", input)
		}
		if !strings.Contains(err.Error(), "input string is empty") {
			t.Errorf("ParseString(%q) err = %v, want error containing 'input string is empty'", input, err)
		}
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	tests := []string{
		`{"name": "John Doe", "age": 30`,
		`["item1", "item2",`,
		`{"a": 1} {"b": 2}`,
		`nope`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseString(input)
			if err == nil {
				t.Fatalf("ParseString() err = nil, want error")
			}
			if !stderrors.Is(err, value.ErrSyntax) {
				t.Errorf("ParseString() err = %v, want value.ErrSyntax", err)
			}
			if !stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeParsing}) {
				t.Errorf("ParseString() err = %v, want a parsing AppError", err)
			}
			if !strings.Contains(err.Error(), "JSON syntax error at offset") {
				t.Errorf("ParseString() err = %v, want the offset in the message", err)
			}
		})
	}
}

func TestParseFile_SimpleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.json")
	if err := os.WriteFile(path, []byte(`{"product": "Laptop", "price": 1200.50}`), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	root, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v, wantErr nil", err)
	}
	if got := root.String(); got != `{"product":"Laptop","price":1200.5}` {
		t.Errorf("ParseFile() root = %s", got)
	}
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nonexistentfile.json"))
	if err == nil {
		t.Fatalf("ParseFile() with non-existent file, err = nil, want error")
	}
	if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile() err = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("")
	if err == nil || !stderrors.Is(err, errors.ErrInvalidFilePath) {
		t.Errorf("ParseFile(\"\") err = %v, want ErrInvalidFilePath", err)
	}
}

func TestParseFile_EmptyFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	_, err := ParseFile(path)
	if err == nil || !stderrors.Is(err, errors.ErrFileEmpty) {
		t.Errorf("ParseFile() with empty file, err = %v, want ErrFileEmpty", err)
	}
}

func TestParse_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name    string
		jsonStr string
		want    value.Value
	}{
		{"RootString", `"hello world"`, value.String("hello world")},
		{"RootNumber", `123.45`, value.Number(123.45)},
		{"RootBooleanTrue", `true`, value.Bool(true)},
		{"RootBooleanFalse", `false`, value.Bool(false)},
		{"RootNull", `null`, value.Null()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tc.jsonStr))
			if err != nil {
				t.Fatalf("Parse() error = %v, wantErr nil", err)
			}
			if !root.Equal(tc.want) {
				t.Errorf("Parse() root = %s, want %s", root, tc.want)
			}
		})
	}
}
