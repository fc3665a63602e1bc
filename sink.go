package jsonshape

import "io"

// Sink receives successive chunks of encoded JSON text. A non-nil error
// aborts the encode and is reported as sink_failure with the sink's error as
// cause. Chunks are borrowed for the duration of the call only.
type Sink interface {
	WriteChunk(p []byte) error
}

// WriterSink adapts an io.Writer into a Sink.
func WriterSink(w io.Writer) Sink { return writerSink{w: w} }

type writerSink struct{ w io.Writer }

func (s writerSink) WriteChunk(p []byte) error {
	_, err := s.w.Write(p)
	return err
}
