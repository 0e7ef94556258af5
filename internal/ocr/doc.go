// Package ocr provides the Tesseract-backed OCR adapter used to find email
// addresses in images.
//
// The adapter exposes two capabilities, each behind its own interface so the
// extraction pipeline can be exercised with fakes:
//
//   - OrientationDetector: orientation and script detection (OSD), reporting
//     how many degrees the page should be rotated
//   - TextExtractor: full-page text recognition
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Orientation detection needs the osd.traineddata language file in addition
// to the recognition language (eng.traineddata by default).
//
// # Engines
//
// Two engines are available:
//
//   - Tesseract: native bindings via gosseract/v2 for text recognition.
//     Only built with CGO enabled.
//   - CLI: runs the tesseract binary. Used for orientation detection in all
//     builds (gosseract has no OSD entry point) and for text recognition
//     when CGO is disabled.
//
// Default picks the best engine available in the current build.
//
// # Configuration
//
// Config is an immutable, ordered list of engine options loaded once per run.
// Every adapter call receives it explicitly. The CLI engine renders each
// option as "--key value"; the native engine maps well-known keys (psm, l,
// tessdata-dir, dpi) onto client setters and forwards the rest as Tesseract
// variables.
//
// # Error Handling
//
// Text extraction that exceeds its context deadline returns an error wrapping
// ErrTimeout. Engine failures are returned as wrapped errors; callers in this
// module treat all of them as recoverable.
package ocr
