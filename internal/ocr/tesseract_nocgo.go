//go:build !cgo

package ocr

// Without CGO the gosseract bindings are unavailable and only the CLI engine
// can be used.
const nativeAvailable = false

func newNative(OrientationDetector) Engine {
	return nil
}

func describeNative(Engine) (Info, bool) {
	return Info{}, false
}
