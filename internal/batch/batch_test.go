package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-emails/internal/extractor"
)

// recordingRunner records every job and fails for inputs listed in fail.
type recordingRunner struct {
	jobs []extractor.Job
	fail map[string]bool
}

func (r *recordingRunner) Run(_ context.Context, job extractor.Job) (extractor.Report, error) {
	r.jobs = append(r.jobs, job)
	if r.fail[filepath.Base(job.Input)] {
		return extractor.Report{Input: job.Input}, &extractor.InputError{Path: job.Input, Err: errors.New("corrupt")}
	}
	return extractor.Report{Input: job.Input, Output: job.Output, Written: true}, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"input/cards/card.jpg", "card.txt"},
		{"scan.page1.png", "scan.txt"},
		{"noext", "noext.txt"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.in); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJobs(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "input")
	out := filepath.Join(root, "output")

	touch(t, filepath.Join(in, "cards", "b.png"))
	touch(t, filepath.Join(in, "cards", "a.jpg"))
	touch(t, filepath.Join(in, "letters", "scan.png"))
	touch(t, filepath.Join(in, "letters", ".hidden.png"))
	touch(t, filepath.Join(in, "top-level.png"))
	touch(t, filepath.Join(in, "letters", "deeper", "ignored.png"))

	jobs, err := Jobs(in, out)
	if err != nil {
		t.Fatalf("Jobs failed: %v", err)
	}

	want := []extractor.Job{
		{Input: filepath.Join(in, "cards", "a.jpg"), Output: filepath.Join(out, "cards", "a.txt")},
		{Input: filepath.Join(in, "cards", "b.png"), Output: filepath.Join(out, "cards", "b.txt")},
		{Input: filepath.Join(in, "letters", "scan.png"), Output: filepath.Join(out, "letters", "scan.txt")},
	}
	if len(jobs) != len(want) {
		t.Fatalf("got %d jobs %+v, want %d", len(jobs), jobs, len(want))
	}
	for i := range want {
		if jobs[i] != want[i] {
			t.Errorf("job %d: got %+v, want %+v", i, jobs[i], want[i])
		}
	}
}

func TestJobs_EmptyDirectory(t *testing.T) {
	jobs, err := Jobs(filepath.Join(t.TempDir(), "missing"), "out")
	if err != nil {
		t.Fatalf("Jobs failed: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %+v", jobs)
	}
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	out := t.TempDir()
	jobs := []extractor.Job{
		{Input: "in/a/one.png", Output: filepath.Join(out, "a", "one.txt")},
		{Input: "in/a/two.png", Output: filepath.Join(out, "a", "two.txt")},
		{Input: "in/b/three.png", Output: filepath.Join(out, "b", "three.txt")},
	}
	r := &recordingRunner{fail: map[string]bool{"two.png": true}}

	s := Run(context.Background(), r, jobs)

	if len(r.jobs) != 3 {
		t.Fatalf("runner saw %d jobs, want 3", len(r.jobs))
	}
	if s.Failed() != 1 || s.Written() != 2 {
		t.Errorf("summary: failed %d written %d, want 1 and 2", s.Failed(), s.Written())
	}
	if s.Err() == nil {
		t.Error("summary should report the failure")
	}
	for _, dir := range []string{"a", "b"} {
		if info, err := os.Stat(filepath.Join(out, dir)); err != nil || !info.IsDir() {
			t.Errorf("output directory %s was not created", dir)
		}
	}
}

func TestRun_AllSucceed(t *testing.T) {
	out := t.TempDir()
	s := Run(context.Background(), &recordingRunner{}, []extractor.Job{
		{Input: "in/a/one.png", Output: filepath.Join(out, "a", "one.txt")},
	})
	if err := s.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &recordingRunner{}
	s := Run(ctx, r, []extractor.Job{{Input: "in/a/one.png", Output: filepath.Join(t.TempDir(), "one.txt")}})

	if len(r.jobs) != 0 || len(s.Results) != 0 {
		t.Error("no job should run after cancellation")
	}
}
