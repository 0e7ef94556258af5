package ocr

import (
	"strings"
)

// Option is a single engine tuning option, e.g. {Key: "psm", Value: "6"}.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Config is an immutable set of engine options applied to every adapter call
// within one run. The zero value is an empty configuration.
type Config struct {
	options []Option
}

// NewConfig builds a Config from the given options, preserving their order.
// Options with an empty key are dropped.
func NewConfig(opts ...Option) Config {
	kept := make([]Option, 0, len(opts))
	for _, o := range opts {
		key := strings.TrimSpace(o.Key)
		if key == "" {
			continue
		}
		kept = append(kept, Option{Key: key, Value: strings.TrimSpace(o.Value)})
	}
	return Config{options: kept}
}

// Options returns a copy of the configured options.
func (c Config) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// IsEmpty reports whether no options are configured.
func (c Config) IsEmpty() bool {
	return len(c.options) == 0
}

// Lookup returns the value of the last option with the given key.
func (c Config) Lookup(key string) (string, bool) {
	for i := len(c.options) - 1; i >= 0; i-- {
		if c.options[i].Key == key {
			return c.options[i].Value, true
		}
	}
	return "", false
}

// Without returns a copy of c with every option named in keys removed.
func (c Config) Without(keys ...string) Config {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	kept := make([]Option, 0, len(c.options))
	for _, o := range c.options {
		if !drop[o.Key] {
			kept = append(kept, o)
		}
	}
	return Config{options: kept}
}

// Args renders the options as tesseract command-line arguments.
// Single-letter keys (l, c) get one dash, longer keys two, and keys that
// already start with "-" are used as is. Options with an empty value become
// bare flags.
func (c Config) Args() []string {
	args := make([]string, 0, 2*len(c.options))
	for _, o := range c.options {
		flag := o.Key
		switch {
		case strings.HasPrefix(flag, "-"):
		case len(flag) == 1:
			flag = "-" + flag
		default:
			flag = "--" + flag
		}
		args = append(args, flag)
		if o.Value != "" {
			args = append(args, o.Value)
		}
	}
	return args
}

// String returns the configuration as a single space-separated string,
// e.g. "--psm 6 --oem 1 -l eng".
func (c Config) String() string {
	return strings.Join(c.Args(), " ")
}
