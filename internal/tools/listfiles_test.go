package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runListFiles(t *testing.T, path string) (string, error) {
	t.Helper()
	tool := NewListFilesTool()
	args := map[string]any{}
	if path != "" {
		args["path"] = path
	}
	validated, err := ValidateArgs(tool.Spec, args)
	if err != nil {
		t.Fatal(err)
	}
	return tool.Run(context.Background(), validated)
}

func TestListFilesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runListFiles(t, dir)
	if err != nil {
		t.Fatal(err)
	}

	alpha := strings.Index(out, "alpha.txt")
	mid := strings.Index(out, "mid.txt")
	zeta := strings.Index(out, "zeta.txt")
	if alpha < 0 || mid < 0 || zeta < 0 {
		t.Fatalf("missing entries in output:\n%s", out)
	}
	if !(alpha < mid && mid < zeta) {
		t.Errorf("listing not lexicographically sorted:\n%s", out)
	}
	if !strings.HasPrefix(out, "Files in '") {
		t.Errorf("unexpected header:\n%s", out)
	}
}

func TestListFilesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := runListFiles(t, dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "is empty") {
		t.Errorf("expected empty-directory message:\n%s", out)
	}
}

func TestListFilesPathNotFound(t *testing.T) {
	_, err := runListFiles(t, filepath.Join(t.TempDir(), "missing"))
	var notFound *PathNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PathNotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestListFilesNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runListFiles(t, file)
	var notDir *NotADirectoryError
	if !errors.As(err, &notDir) {
		t.Fatalf("expected NotADirectoryError, got %v", err)
	}
}

func TestListFilesDefaultsToCurrentDirectory(t *testing.T) {
	tool := NewListFilesTool()
	validated, err := ValidateArgs(tool.Spec, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if got := ArgString(validated, "path"); got != "." {
		t.Errorf("expected default path '.', got %q", got)
	}
}
