// Package batch runs the extraction pipeline over a directory tree.
//
// Inputs are the files one level below the category directories of the input
// root (input/<category>/<image>); each result goes to the mirrored path
// under the output root (output/<category>/<image name>.txt). Images are
// processed one at a time and a failure never stops the run.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/image-emails/internal/extractor"
)

// Runner processes a single job.
type Runner interface {
	Run(ctx context.Context, job extractor.Job) (extractor.Report, error)
}

// Result is the outcome of one job.
type Result struct {
	Job    extractor.Job
	Report extractor.Report
	Err    error
}

// Summary collects the results of a batch run.
type Summary struct {
	Results []Result
}

// Failed returns the number of jobs that ended in an error.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Written returns the number of result files written.
func (s Summary) Written() int {
	n := 0
	for _, r := range s.Results {
		if r.Report.Written {
			n++
		}
	}
	return n
}

// Err reports whether any job failed.
func (s Summary) Err() error {
	if n := s.Failed(); n > 0 {
		return fmt.Errorf("%d of %d image(s) failed", n, len(s.Results))
	}
	return nil
}

// OutputName returns the result file name for an image: everything before
// the first '.' of its base name, plus ".txt".
func OutputName(image string) string {
	name, _, _ := strings.Cut(filepath.Base(image), ".")
	return name + ".txt"
}

// Jobs lists the images under inputDir/*/* with their result paths under
// outputDir, in lexical order. Directories and hidden files are skipped.
func Jobs(inputDir, outputDir string) ([]extractor.Job, error) {
	matches, err := filepath.Glob(filepath.Join(inputDir, "*", "*"))
	if err != nil {
		return nil, fmt.Errorf("invalid input directory %s: %w", inputDir, err)
	}
	sort.Strings(matches)

	var jobs []extractor.Job
	for _, path := range matches {
		if strings.HasPrefix(filepath.Base(path), ".") {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		category := filepath.Base(filepath.Dir(path))
		jobs = append(jobs, extractor.Job{
			Input:  path,
			Output: filepath.Join(outputDir, category, OutputName(path)),
		})
	}
	return jobs, nil
}

// Run processes jobs sequentially. Output directories are created as needed;
// errors are logged and the run continues with the next image. A cancelled
// ctx stops the run before the next job.
func Run(ctx context.Context, r Runner, jobs []extractor.Job) Summary {
	var s Summary
	for _, job := range jobs {
		if ctx.Err() != nil {
			log.Printf("Batch cancelled: %v", ctx.Err())
			break
		}

		log.Printf("Processing %s -> %s", job.Input, job.Output)
		res := Result{Job: job}
		if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
			res.Err = fmt.Errorf("failed to create output directory: %w", err)
		} else {
			res.Report, res.Err = r.Run(ctx, job)
		}
		if res.Err != nil {
			log.Printf("Failed to process %s: %v", job.Input, res.Err)
		}
		s.Results = append(s.Results, res)
	}

	log.Printf("Done: %d image(s), %d result file(s) written, %d failed", len(s.Results), s.Written(), s.Failed())
	return s
}
