package similarity

import (
	"fmt"
	"math"
	"os"

	"github.com/viterin/vek/vek32"

	"github.com/samober/ober-ml/pkg/binio"
)

// Matrix holds a dense row-major float32 token vector matrix. Row index
// doubles as the token's node id in the similarity graph.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// NewMatrix wraps existing row-major data. The slice length must be
// rows*cols.
func NewMatrix(rows, cols int, data []float32) (*Matrix, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("matrix data length %d does not match %dx%d", len(data), rows, cols)
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// Row returns row i of the matrix as a view into the backing array
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Normalize scales every row to unit L2 norm in place, so that the GEMM in
// the kernel computes cosine similarities directly. All-zero rows are left
// untouched; callers are expected to filter those upstream.
func (m *Matrix) Normalize() {
	for i := 0; i < m.Rows; i++ {
		row := m.Row(i)
		norm := float32(math.Sqrt(float64(vek32.Dot(row, row))))
		if norm == 0 {
			continue
		}
		vek32.MulNumber_Inplace(row, 1/norm)
	}
}

// LoadMatrix reads a vector matrix file: a little-endian int32 row count
// and column count followed by rows*cols little-endian float32 values in
// row-major order.
func LoadMatrix(path string) (*Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector file: %w", err)
	}
	defer file.Close()

	r := binio.NewReader(file)
	rows, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file header: %w", err)
	}
	cols, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file header: %w", err)
	}
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid vector matrix shape %dx%d", rows, cols)
	}

	data := make([]float32, int(rows)*int(cols))
	for i := range data {
		data[i], err = r.ReadFloat32()
		if err != nil {
			return nil, fmt.Errorf("failed to read vector data: %w", err)
		}
	}

	return &Matrix{Rows: int(rows), Cols: int(cols), Data: data}, nil
}

// SaveMatrix writes a vector matrix in the format read by LoadMatrix
func SaveMatrix(path string, m *Matrix) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vector file: %w", err)
	}
	defer file.Close()

	w := binio.NewWriter(file)
	if err := w.WriteInt32(int32(m.Rows)); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(m.Cols)); err != nil {
		return err
	}
	for _, v := range m.Data {
		if err := w.WriteFloat32(v); err != nil {
			return err
		}
	}
	return w.Flush()
}
