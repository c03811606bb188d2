package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yaklabco/gomdmath/pkg/runner"
)

// makeTree creates files relative to dir.
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("$$\nx\n$$\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// discover runs Discover and returns paths relative to dir.
func discover(t *testing.T, dir string, opts runner.Options) []string {
	t.Helper()

	opts.WorkingDir = dir
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/draft/wip.md",
		"vendor/lib/notes.md",
		"src/main.go",
		"notes.txt",
		".hidden/secret.md",
		".dotfile.md",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "markdown files only, hidden skipped",
			want: []string{"docs/api.markdown", "docs/draft/wip.md", "docs/guide.md", "readme.md", "vendor/lib/notes.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".markdown"}},
			want: []string{"docs/api.markdown"},
		},
		{
			name: "exclude directory contents",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**"}},
			want: []string{"docs/api.markdown", "docs/draft/wip.md", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"draft", "readme.*"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "vendor/lib/notes.md"},
		},
		{
			name: "single star stays within a segment",
			opts: runner.Options{IncludeGlobs: []string{"docs/*.md"}},
			want: []string{"docs/guide.md"},
		},
		{
			name: "double star crosses segments",
			opts: runner.Options{IncludeGlobs: []string{"docs/**.md"}},
			want: []string{"docs/draft/wip.md", "docs/guide.md"},
		},
		{
			name: "explicit paths deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.md", "readme.md"}},
			want: []string{"docs/api.markdown", "docs/draft/wip.md", "docs/guide.md", "readme.md"},
		},
	}

	dir := t.TempDir()
	makeTree(t, dir, tree...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := discover(t, dir, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md")

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	if err == nil {
		t.Fatal("expected error for invalid glob")
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	makeTree(t, dir, "a.md")
	makeTree(t, outside, "linked.md")

	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if got := discover(t, dir, runner.Options{}); !reflect.DeepEqual(got, []string{"a.md"}) {
		t.Errorf("without FollowSymlinks: %v", got)
	}

	got := discover(t, dir, runner.Options{FollowSymlinks: true})
	if len(got) != 2 {
		t.Errorf("with FollowSymlinks expected 2 files, got %v", got)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !reflect.DeepEqual(got, []string{".md", ".markdown"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
