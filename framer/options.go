// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framer

// Options configures framing behavior.
type Options struct {
	// Terminator is the two-byte (or longer, for testing) sequence that ends
	// every logical message on the wire. Defaults to 0x07, 0x08.
	Terminator []byte

	// MinLength is the floor applied to every caller-supplied max length, so
	// that an out-of-band notification (e.g. "RECHARGING") is always
	// admissible regardless of the current operation's own budget.
	MinLength int
}

var defaultTerminator = []byte{0x07, 0x08}

var defaultOptions = Options{
	Terminator: defaultTerminator,
	MinLength:  12,
}

type Option func(*Options)

// WithTerminator overrides the message terminator sequence.
func WithTerminator(term []byte) Option {
	return func(o *Options) { o.Terminator = append([]byte(nil), term...) }
}

// WithMinLength overrides the max-length floor applied to every read.
func WithMinLength(n int) Option {
	return func(o *Options) { o.MinLength = n }
}
