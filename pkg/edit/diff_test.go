package edit_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gomdmath/pkg/edit"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	t.Run("nil for identical content", func(t *testing.T) {
		t.Parallel()

		content := []byte("$$\nx\n$$\n")
		diff, err := edit.Unified("doc.md", content, content)
		if err != nil {
			t.Fatalf("Unified() error = %v", err)
		}
		if diff != nil {
			t.Errorf("expected nil diff, got %q", diff.Text)
		}
	})

	t.Run("fence change", func(t *testing.T) {
		t.Parallel()

		original := []byte("# T\n\n$$$\nx\n$$$\n")
		modified := []byte("# T\n\n$$\nx\n$$\n")

		diff, err := edit.Unified("docs/doc.md", original, modified)
		if err != nil {
			t.Fatalf("Unified() error = %v", err)
		}
		if diff == nil {
			t.Fatal("expected a diff")
		}

		for _, want := range []string{"--- a/docs/doc.md\n", "+++ b/docs/doc.md\n", "-$$$\n", "+$$\n", " x\n"} {
			if !strings.Contains(diff.Text, want) {
				t.Errorf("diff missing %q:\n%s", want, diff.Text)
			}
		}
		if diff.Additions != 2 || diff.Deletions != 2 {
			t.Errorf("Additions, Deletions = %d, %d, want 2, 2", diff.Additions, diff.Deletions)
		}
		if !strings.HasPrefix(diff.String(), "diff --git a/docs/doc.md b/docs/doc.md\n") {
			t.Errorf("String() missing git header: %q", diff.String())
		}
	})

	t.Run("missing final newline", func(t *testing.T) {
		t.Parallel()

		diff, err := edit.Unified("doc.md", []byte("a\nb"), []byte("a\nc"))
		if err != nil {
			t.Fatalf("Unified() error = %v", err)
		}
		if !strings.Contains(diff.Text, "-b\n+c\n") {
			t.Errorf("unexpected diff:\n%s", diff.Text)
		}
	})
}
