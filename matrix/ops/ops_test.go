package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/metrix-opf/metrix/matrix"
	"github.com/metrix-opf/metrix/matrix/ops"
)

type OpsSuite struct {
	suite.Suite
}

func TestOpsSuite(t *testing.T) {
	suite.Run(t, new(OpsSuite))
}

func square(s *OpsSuite, rows [][]float64) matrix.Matrix {
	n := len(rows)
	m, err := matrix.NewDense(n, n)
	require.NoError(s.T(), err)
	for i := range rows {
		for j := range rows[i] {
			require.NoError(s.T(), m.Set(i, j, rows[i][j]))
		}
	}
	return m
}

func (s *OpsSuite) TestLUReconstructsOriginal() {
	m := square(s, [][]float64{
		{4, 3},
		{6, 3},
	})
	L, U, err := ops.LU(m)
	require.NoError(s.T(), err)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum float64
			for k := 0; k < 2; k++ {
				lv, _ := L.At(i, k)
				uv, _ := U.At(k, j)
				sum += lv * uv
			}
			orig, _ := m.At(i, j)
			require.InDelta(s.T(), orig, sum, 1e-9)
		}
	}
}

func (s *OpsSuite) TestLUNonSquare() {
	m, err := matrix.NewDense(2, 3)
	require.NoError(s.T(), err)
	_, _, err = ops.LU(m)
	require.ErrorIs(s.T(), err, matrix.ErrNonSquare)
}

func (s *OpsSuite) TestInverseIdentityRoundTrip() {
	m := square(s, [][]float64{
		{2, 0},
		{0, 4},
	})
	inv, err := ops.Inverse(m)
	require.NoError(s.T(), err)

	v00, _ := inv.At(0, 0)
	v11, _ := inv.At(1, 1)
	require.InDelta(s.T(), 0.5, v00, 1e-9)
	require.InDelta(s.T(), 0.25, v11, 1e-9)
}

func (s *OpsSuite) TestInverseSingular() {
	m := square(s, [][]float64{
		{1, 2},
		{2, 4},
	})
	_, err := ops.Inverse(m)
	require.ErrorIs(s.T(), err, matrix.ErrSingular)
}
