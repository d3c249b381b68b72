package run

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup. Equivalent to t.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestNewRun(t *testing.T) {
	chdir(t, t.TempDir())

	r, err := New("content", "AI in Healthcare!")
	if err != nil {
		t.Fatal(err)
	}
	if r.Meta.Status != "running" {
		t.Errorf("expected running status, got %q", r.Meta.Status)
	}
	if _, err := os.Stat(filepath.Join(r.Dir, "meta.json")); err != nil {
		t.Errorf("meta.json not written: %v", err)
	}

	// slug is lowercased and stripped of punctuation
	if filepath.Base(r.Dir)[len("20060102-150405-000-"):] != "ai-in-healthcare" {
		t.Errorf("unexpected run dir %q", r.Dir)
	}

	latest, err := os.Readlink(filepath.Join(".lmchat", "runs", "latest"))
	if err != nil {
		t.Fatalf("latest symlink: %v", err)
	}
	if latest != r.ID {
		t.Errorf("latest points to %q, want %q", latest, r.ID)
	}
}

func TestStepResultsAndCompletion(t *testing.T) {
	chdir(t, t.TempDir())

	r, err := New("content", "topic")
	if err != nil {
		t.Fatal(err)
	}

	if err := r.AddStepResult(StepResult{OutputKey: "blog_post", Status: "completed", DurationMS: 1200}); err != nil {
		t.Fatal(err)
	}
	if err := r.Complete(); err != nil {
		t.Fatal(err)
	}

	if len(r.Meta.Steps) != 1 || r.Meta.Steps[0].OutputKey != "blog_post" {
		t.Errorf("unexpected steps: %+v", r.Meta.Steps)
	}
	if r.Meta.Status != "completed" {
		t.Errorf("expected completed, got %q", r.Meta.Status)
	}
}

func TestWriteReadFile(t *testing.T) {
	chdir(t, t.TempDir())

	r, err := New("content", "t")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.WriteFile("blog_post.md", "content here"); err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadFile("blog_post.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "content here" {
		t.Errorf("ReadFile = %q", got)
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"AI in Healthcare", "ai-in-healthcare"},
		{"--weird--", "weird"},
		{"", "run"},
		{"ALL CAPS & symbols!!", "all-caps-symbols"},
	}
	for _, tt := range tests {
		if got := sanitizeSlug(tt.in); got != tt.want {
			t.Errorf("sanitizeSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
