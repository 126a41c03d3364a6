package imagelib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrSourceExhausted is returned by ReadChunk when the source ends before
// the requested number of bytes. It wraps io.ErrUnexpectedEOF.
var ErrSourceExhausted = fmt.Errorf("imagelib: source exhausted: %w", io.ErrUnexpectedEOF)

// ChunkReader is the byte source handed to a Reader. It buffers the
// underlying stream and counts the bytes consumed.
type ChunkReader struct {
	r   *bufio.Reader
	off int64
}

// NewChunkReader returns a ChunkReader reading from r.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{r: bufio.NewReader(r)}
}

// ReadChunk returns exactly n bytes, or the bytes that were available
// together with ErrSourceExhausted.
func (c *ChunkReader) ReadChunk(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("imagelib: negative chunk size %d", n)
	}

	buf := make([]byte, n)
	k, err := io.ReadFull(c.r, buf)
	c.off += int64(k)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return buf[:k], ErrSourceExhausted
	}
	return buf[:k], err
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.off += int64(n)
	return n, err
}

func (c *ChunkReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.off++
	}
	return b, err
}

// Peek returns the next n bytes without consuming them. Fewer bytes are
// returned, with ErrSourceExhausted, when the source is shorter.
func (c *ChunkReader) Peek(n int) ([]byte, error) {
	b, err := c.r.Peek(n)
	if errors.Is(err, io.EOF) {
		err = ErrSourceExhausted
	}
	return b, err
}

// Offset returns the number of bytes consumed so far.
func (c *ChunkReader) Offset() int64 {
	return c.off
}

// ChunkWriter is the byte sink handed to a Writer. Output is buffered until
// Flush.
type ChunkWriter struct {
	w   *bufio.Writer
	off int64
}

// NewChunkWriter returns a ChunkWriter writing to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: bufio.NewWriter(w)}
}

// WriteChunk writes all of p.
func (c *ChunkWriter) WriteChunk(p []byte) error {
	_, err := c.Write(p)
	return err
}

func (c *ChunkWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.off += int64(n)
	return n, err
}

func (c *ChunkWriter) WriteByte(b byte) error {
	err := c.w.WriteByte(b)
	if err == nil {
		c.off++
	}
	return err
}

// Flush writes any buffered data to the underlying writer.
func (c *ChunkWriter) Flush() error {
	return c.w.Flush()
}

// Offset returns the number of bytes written so far, flushed or not.
func (c *ChunkWriter) Offset() int64 {
	return c.off
}
