// internal/scan/clone_test.go
package scan_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dsablic/licenseid/internal/scan"
)

func TestCloneAndCleanup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping clone test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cloner := scan.NewCloner("")

	// Clone a small public repo
	dir, cleanup, err := cloner.Clone(ctx, "https://github.com/kelseyhightower/nocode.git")
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}

	// The clone must be scannable like any local tree
	report, err := scan.New(testEngine(t), scan.Options{}).Scan(ctx, dir, nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if report.Root != dir {
		t.Errorf("expected root %q, got %q", dir, report.Root)
	}

	// Cleanup should remove the directory
	cleanup()

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected directory to be removed after cleanup, but it still exists")
	}
}

func TestCloneInvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, _, err := scan.NewCloner("").Clone(ctx, "file:///definitely/not/a/repo")
	if err == nil {
		t.Fatal("expected error cloning a missing repository")
	}
}

func TestCloneRef(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping clone test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	const repo = "https://github.com/kelseyhightower/nocode.git"
	dir, cleanup, err := scan.NewCloner("").WithRef("master").Clone(ctx, repo)
	if err != nil {
		t.Fatalf("clone at branch failed: %v", err)
	}
	cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed", dir)
	}

	if _, _, err := scan.NewCloner("").WithRef("no-such-ref").Clone(ctx, repo); err == nil {
		t.Fatal("expected error for unknown ref")
	}
}
