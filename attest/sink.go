package attest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcp-tool-shop-org/registrum/encoding"
)

// Sink delivers an encoded attestation payload to one external
// destination. A Sink must never panic; Emit reports failure through
// EmissionResult instead.
type Sink interface {
	Send(encoded []byte) error
}

// FileSink appends a newline-delimited encoded payload to a file,
// creating it if absent.
type FileSink struct {
	Path string
}

func (s FileSink) Send(encoded []byte) error {
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("attest: opening %q: %w", s.Path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("attest: writing %q: %w", s.Path, err)
	}
	return nil
}

// StdoutSink writes a newline-delimited encoded payload to stdout.
type StdoutSink struct{}

func (StdoutSink) Send(encoded []byte) error {
	_, err := fmt.Println(string(encoded))
	return err
}

// CallbackSink hands the encoded payload to an in-process function.
// Fn must not be nil.
type CallbackSink struct {
	Fn func(payload string)
}

func (s CallbackSink) Send(encoded []byte) error {
	if s.Fn == nil {
		return fmt.Errorf("attest: callback sink has no function configured")
	}
	s.Fn(string(encoded))
	return nil
}

// encodePayload canonically encodes p for delivery to a Sink, as
// two-space-indented JSON for human inspection.
func encodePayload(p Payload) ([]byte, error) {
	compact, err := encoding.Canonical(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
