package binio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader reads little-endian typed values from a buffered stream.
// The edge files produced by the similarity kernel store everything as
// 4-byte little-endian groups, least significant byte first.
type Reader struct {
	r   *bufio.Reader
	buf [4]byte
}

// NewReader creates a buffered little-endian reader over r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadInt32 reads a single little-endian int32
func (r *Reader) ReadInt32() (int32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:])), nil
}

// ReadFloat32 reads a single little-endian IEEE-754 float32
func (r *Reader) ReadFloat32() (float32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.buf[:])), nil
}

// Writer writes little-endian typed values to a buffered stream. Callers
// must Flush before closing the underlying file.
type Writer struct {
	w   *bufio.Writer
	buf [4]byte
}

// NewWriter creates a buffered little-endian writer over w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteInt32 writes a single little-endian int32
func (w *Writer) WriteInt32(v int32) error {
	binary.LittleEndian.PutUint32(w.buf[:], uint32(v))
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return fmt.Errorf("failed to write int32: %w", err)
	}
	return nil
}

// WriteFloat32 writes a single little-endian IEEE-754 float32
func (w *Writer) WriteFloat32(v float32) error {
	binary.LittleEndian.PutUint32(w.buf[:], math.Float32bits(v))
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return fmt.Errorf("failed to write float32: %w", err)
	}
	return nil
}

// Flush writes any buffered data to the underlying stream
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}
