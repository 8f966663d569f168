package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/metrix-opf/metrix/matrix"
)

type DenseSuite struct {
	suite.Suite
}

func TestDenseSuite(t *testing.T) {
	suite.Run(t, new(DenseSuite))
}

func (s *DenseSuite) TestSetAtRoundTrip() {
	m, err := matrix.NewDense(2, 3)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Set(1, 2, 4.5))
	v, err := m.At(1, 2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4.5, v)
}

func (s *DenseSuite) TestOutOfRange() {
	m, err := matrix.NewDense(2, 2)
	require.NoError(s.T(), err)
	_, err = m.At(2, 0)
	require.ErrorIs(s.T(), err, matrix.ErrOutOfRange)
	require.ErrorIs(s.T(), m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func (s *DenseSuite) TestBadShape() {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(s.T(), err, matrix.ErrBadShape)
}

func (s *DenseSuite) TestCloneIsIndependent() {
	m, err := matrix.NewDense(2, 2)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Set(0, 0, 1))
	c := m.Clone()
	require.NoError(s.T(), m.Set(0, 0, 9))
	v, err := c.At(0, 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1.0, v)
}

func (s *DenseSuite) TestIdentity() {
	m, err := matrix.Identity(3)
	require.NoError(s.T(), err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, _ := m.At(i, j)
			if i == j {
				require.Equal(s.T(), 1.0, v)
			} else {
				require.Equal(s.T(), 0.0, v)
			}
		}
	}
}

func (s *DenseSuite) TestMulVec() {
	m, err := matrix.NewDense(2, 2)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Set(0, 0, 1))
	require.NoError(s.T(), m.Set(0, 1, 2))
	require.NoError(s.T(), m.Set(1, 0, 3))
	require.NoError(s.T(), m.Set(1, 1, 4))
	out, err := m.MulVec([]float64{1, 1})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{3, 7}, out)

	_, err = m.MulVec([]float64{1, 2, 3})
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)
}
