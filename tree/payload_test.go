package tree

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		want    *Node
		wantErr error
	}{
		{
			"json",
			`{"name":"root","kind":"directory","children":[{"name":"a","kind":"file"},{"name":"b","kind":"directory","children":[]}]}`,
			JSON,
			NewDir("root", NewFile("a"), NewDir("b")),
			nil,
		},
		{
			"type alias",
			`{"name":"root","type":"directory","children":[{"name":"a","type":"file"}]}`,
			JSON,
			NewDir("root", NewFile("a")),
			nil,
		},
		{
			"directory without children",
			`{"name":"root","kind":"directory"}`,
			JSON,
			NewDir("root"),
			nil,
		},
		{
			"inferred kinds",
			`{"name":"root","children":[{"name":"a"}]}`,
			JSON,
			NewDir("root", NewFile("a")),
			nil,
		},
		{
			"yaml",
			"name: root\nkind: directory\nchildren:\n  - name: src\n    kind: directory\n    children: []\n  - name: README.md\n    kind: file\n",
			YAML,
			NewDir("root", NewDir("src"), NewFile("README.md")),
			nil,
		},
		{"empty name", `{"name":"root","children":[{"name":""}]}`, JSON, nil, ErrEmptyName},
		{"separator", `{"name":"root","children":[{"name":"a/b"}]}`, JSON, nil, ErrBadName},
		{"file children", `{"name":"root","kind":"file","children":[{"name":"a"}]}`, JSON, nil, ErrFileChildren},
		{"file empty children", `{"name":"root","children":[{"name":"a","kind":"file","children":[]}]}`, JSON, nil, ErrFileChildren},
		{"yaml file empty children", "name: root\nchildren:\n  - name: a\n    kind: file\n    children: []\n", YAML, nil, ErrFileChildren},
		{"duplicate", `{"name":"root","children":[{"name":"a"},{"name":"a"}]}`, JSON, nil, ErrDuplicateName},
		{"bad kind", `{"name":"root","kind":"socket"}`, JSON, nil, ErrBadKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode([]byte(`{"name":`), JSON); err == nil {
		t.Error("Decode() accepted malformed JSON")
	}
}

func TestNodeJSON(t *testing.T) {
	root := NewDir("root", NewFile("a"), NewDir("empty"))
	b, err := json.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"root","kind":"directory","children":[{"name":"a","kind":"file"},{"name":"empty","kind":"directory","children":[]}]}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}
	var back Node
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(&back, root) {
		t.Errorf("Unmarshal() = %+v, want %+v", back, root)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"tree.json": JSON,
		"tree.yaml": YAML,
		"TREE.YML":  YAML,
		"tree":      JSON,
	}
	for name, want := range tests {
		if got := FormatOf(name); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", name, got, want)
		}
	}
}
