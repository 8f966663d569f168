package matrix

import "fmt"

// Dense is a row-major dense Matrix backed by a flat float64 slice.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense allocates a zero-valued r×c Dense matrix.
func NewDense(r, c int) (*Dense, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("matrix: NewDense(%d, %d): %w", r, c, ErrBadShape)
	}
	return &Dense{rows: r, cols: c, data: make([]float64, r*c)}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

func (d *Dense) Rows() int { return d.rows }
func (d *Dense) Cols() int { return d.cols }

func (d *Dense) index(i, j int) (int, error) {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return 0, fmt.Errorf("matrix: At/Set(%d, %d) on %dx%d: %w", i, j, d.rows, d.cols, ErrOutOfRange)
	}
	return i*d.cols + j, nil
}

func (d *Dense) At(i, j int) (float64, error) {
	idx, err := d.index(i, j)
	if err != nil {
		return 0, err
	}
	return d.data[idx], nil
}

func (d *Dense) Set(i, j int, v float64) error {
	idx, err := d.index(i, j)
	if err != nil {
		return err
	}
	d.data[idx] = v
	return nil
}

func (d *Dense) Clone() Matrix {
	cp := make([]float64, len(d.data))
	copy(cp, d.data)
	return &Dense{rows: d.rows, cols: d.cols, data: cp}
}

// MulVec computes d*v, where len(v) must equal d.Cols().
func (d *Dense) MulVec(v []float64) ([]float64, error) {
	if len(v) != d.cols {
		return nil, fmt.Errorf("matrix: MulVec: vector length %d != cols %d: %w", len(v), d.cols, ErrDimensionMismatch)
	}
	out := make([]float64, d.rows)
	for i := 0; i < d.rows; i++ {
		var sum float64
		base := i * d.cols
		for j := 0; j < d.cols; j++ {
			sum += d.data[base+j] * v[j]
		}
		out[i] = sum
	}
	return out, nil
}
