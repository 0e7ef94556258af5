// Package imaging loads, rotates and saves the page images that are searched
// for email addresses.
//
// All operations work with standard Go image.Image types. Decoding and
// encoding go through disintegration/imaging; rotation uses bild's transform
// package with bound resizing so rotated pages are never cropped.
//
// # Rotation Convention
//
// Rotate takes angles counter-clockwise, the same convention as the OCR
// engine's orientation report. Turning a page back upright after Tesseract
// reports "Rotate: 90" therefore means Rotate(img, -90, bg).
//
// # Background
//
// Corners uncovered by a rotation are painted with a background colour,
// white unless configured otherwise. ParseBackground accepts the hex forms
// understood by go-colorful ("#rrggbb", "#rgb"), with or without the leading
// "#". BorderColor picks the page's own edge colour instead, for scans on
// tinted paper.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing, unreadable or undecodable image files
//   - Encoding or I/O errors while saving
package imaging
