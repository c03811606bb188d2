package edit_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gomdmath/pkg/edit"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []edit.Edit
		want    string
	}{
		{name: "no edits", content: "hello", want: "hello"},
		{
			name:    "single replacement",
			content: "hello world",
			edits:   []edit.Edit{{Start: 6, End: 11, Text: "there"}},
			want:    "hello there",
		},
		{
			name:    "unsorted edits",
			content: "$$$\na\n$$$\n\n$$$\nb\n$$$\n",
			edits: []edit.Edit{
				{Start: 11, End: 20, Text: "$$\nb\n$$"},
				{Start: 0, End: 9, Text: "$$\na\n$$"},
			},
			want: "$$\na\n$$\n\n$$\nb\n$$\n",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []edit.Edit{
				{Start: 0, End: 2, Text: "XX"},
				{Start: 2, End: 4, Text: "YY"},
			},
			want: "XXYYef",
		},
		{
			name:    "insert at end",
			content: "hello",
			edits:   []edit.Edit{{Start: 5, End: 5, Text: " world"}},
			want:    "hello world",
		},
		{
			name:    "delete all content",
			content: "hello",
			edits:   []edit.Edit{{Start: 0, End: 5}},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := edit.Apply([]byte(tt.content), tt.edits)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_PreservesInput(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")
	edits := []edit.Edit{{Start: 0, End: 5, Text: "hi"}}

	if _, err := edit.Apply(content, edits); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if string(content) != "hello world" {
		t.Errorf("Apply modified its input: %q", content)
	}
	if edits[0].Start != 0 {
		t.Error("Apply modified its edits")
	}
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edits    []edit.Edit
		conflict bool
	}{
		{name: "negative start", edits: []edit.Edit{{Start: -1, End: 2}}},
		{name: "end before start", edits: []edit.Edit{{Start: 3, End: 2}}},
		{name: "end past content", edits: []edit.Edit{{Start: 0, End: 99}}},
		{
			name:     "overlap",
			edits:    []edit.Edit{{Start: 0, End: 3, Text: "a"}, {Start: 2, End: 4, Text: "b"}},
			conflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := edit.Apply([]byte("hello"), tt.edits)
			if err == nil {
				t.Fatal("expected an error")
			}

			var conflict *edit.ConflictError
			var rangeErr *edit.RangeError
			switch {
			case tt.conflict && !errors.As(err, &conflict):
				t.Errorf("expected ConflictError, got %T", err)
			case !tt.conflict && !errors.As(err, &rangeErr):
				t.Errorf("expected RangeError, got %T", err)
			}
		})
	}
}
