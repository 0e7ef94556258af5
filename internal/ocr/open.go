package ocr

import (
	"fmt"
	"log"
	"strings"
)

// Engine kinds accepted by Open.
const (
	EngineAuto   = "auto"
	EngineNative = "native"
	EngineCLI    = "cli"
)

// Open returns the OCR engine of the requested kind.
//
// EngineAuto prefers the native bindings for text recognition and falls back
// to the CLI engine in builds without CGO. Orientation detection always goes
// through the tesseract binary; when it is missing the native engine is still
// returned and orientation detection fails at call time.
func Open(kind, binary string) (Engine, error) {
	cli, cliErr := NewCLI(binary)

	switch strings.ToLower(kind) {
	case "", EngineAuto:
		if nativeAvailable {
			return openNative(cli, cliErr), nil
		}
		if cliErr != nil {
			return nil, cliErr
		}
		return cli, nil
	case EngineNative:
		if !nativeAvailable {
			return nil, fmt.Errorf("%w: the native engine requires a cgo build", ErrNoEngine)
		}
		return openNative(cli, cliErr), nil
	case EngineCLI:
		if cliErr != nil {
			return nil, cliErr
		}
		return cli, nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (want %s, %s or %s)", kind, EngineAuto, EngineNative, EngineCLI)
	}
}

func openNative(cli *CLI, cliErr error) Engine {
	if cliErr != nil {
		log.Printf("Orientation detection unavailable: %v", cliErr)
		return newNative(nil)
	}
	return newNative(cli)
}

// Info contains information about the OCR subsystem.
type Info struct {
	Available bool   `json:"available"`
	Backend   string `json:"backend"`
	Version   string `json:"version,omitempty"`
	Binary    string `json:"binary,omitempty"`
}

// Describe reports which backend e uses.
func Describe(e Engine) Info {
	switch v := e.(type) {
	case *CLI:
		return Info{Available: true, Backend: "tesseract (cli)", Binary: v.Binary}
	case nil:
		return Info{Backend: "none"}
	}
	if info, ok := describeNative(e); ok {
		return info
	}
	return Info{Available: true, Backend: fmt.Sprintf("%T", e)}
}
