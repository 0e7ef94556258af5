package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/image-emails/internal/imaging"
	"github.com/ironsheep/image-emails/internal/ocr"
	"github.com/ironsheep/image-emails/internal/orientation"
	"github.com/ironsheep/image-emails/internal/output"
)

// InputError reports an image that could not be read. Nothing else is
// attempted for that image.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot read input image %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Job names one image and the file its addresses are written to.
type Job struct {
	Input  string
	Output string
}

// Report describes the outcome of a Job.
type Report struct {
	Input  string   `json:"input"`
	Output string   `json:"output,omitempty"`
	Emails []string `json:"emails"`

	Rotated     bool   `json:"rotated"`
	RotatedPath string `json:"rotated_path,omitempty"`

	// Written is false when nothing was found, in which case an existing
	// output file is left untouched.
	Written bool `json:"written"`
}

// Pipeline processes images end to end.
type Pipeline struct {
	Normalizer *orientation.Normalizer
	Extractor  *Extractor
	Writer     output.Writer
	Config     ocr.Config

	// SaveRotated keeps a copy of every rotated image next to the output
	// file, named after the input with a "-rotated" suffix.
	SaveRotated bool
}

// NewPipeline wires an engine into a pipeline with default settings.
func NewPipeline(engine ocr.Engine, cfg ocr.Config) *Pipeline {
	return &Pipeline{
		Normalizer: orientation.New(engine),
		Extractor:  New(engine),
		Writer:     output.FileWriter{},
		Config:     cfg,
	}
}

// Run processes job. An unreadable input yields an *InputError; a failure to
// write the result file is returned as an error too, as is cancellation of
// ctx. Everything else
// (orientation detection, recognition, invalid candidates, the rotated copy)
// degrades to a logged message.
//
// With an empty job.Output the addresses are reported but not written.
func (p *Pipeline) Run(ctx context.Context, job Job) (Report, error) {
	report := Report{Input: job.Input, Output: job.Output}

	img, err := imaging.Load(job.Input)
	if err != nil {
		return report, &InputError{Path: job.Input, Err: err}
	}

	if p.Normalizer != nil {
		img, report.Rotated = p.Normalizer.Normalize(ctx, img, p.Config)
	}
	if report.Rotated && p.SaveRotated && job.Output != "" {
		path, err := imaging.Save(img, imaging.RotatedPath(job.Input, job.Output))
		if err != nil {
			log.Printf("Could not save rotated image: %v", err)
		} else {
			report.RotatedPath = path
		}
	}

	if p.Extractor == nil {
		return report, errors.New("pipeline has no extractor")
	}
	report.Emails = p.Extractor.ExtractEmails(ctx, img, p.Config)
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return report, fmt.Errorf("extraction of %s interrupted: %w", job.Input, err)
	}
	if len(report.Emails) == 0 {
		log.Printf("No emails found in %s", job.Input)
		return report, nil
	}
	if job.Output == "" {
		return report, nil
	}

	w := p.Writer
	if w == nil {
		w = output.FileWriter{}
	}
	if err := w.Write(job.Output, report.Emails); err != nil {
		return report, err
	}
	report.Written = true
	log.Printf("Wrote %d email(s) from %s to %s", len(report.Emails), job.Input, job.Output)
	return report, nil
}
