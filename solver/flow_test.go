package solver_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/metrix-opf/metrix/config"
	"github.com/metrix-opf/metrix/diedata"
	"github.com/metrix-opf/metrix/network"
	"github.com/metrix-opf/metrix/solver"
)

type FlowSuite struct {
	suite.Suite
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

// twoNodeNetwork builds the seed scenario of one branch between a 100MW
// generator at node 0 and a 40MW load at node 1.
func twoNodeNetwork(t *testing.T) *network.Network {
	cfg := &config.Configuration{ReferenceVoltage: 1}
	data := &diedata.NetworkData{
		NodeCount:    2,
		NodeRegion:   []int{0, 0},
		SlackPerZone: true,
		Branches: []diedata.BranchDef{
			{
				Name:       "B1",
				From:       diedata.BranchEnd{NodeIndex: 0, Closed: true},
				To:         diedata.BranchEnd{NodeIndex: 1, Closed: true},
				Admittance: 10,
				Monitored: &diedata.MonitorDef{
					Name:    "B1",
					Forward: diedata.ThresholdSet{Basecase: 200, HasBasecase: true},
				},
			},
		},
		Generators: []diedata.GeneratorDef{
			{Name: "G1", NodeIndex: 0, Target: 40, PMin: 0, PMax: 100, AvailablePMax: 100},
		},
		Loads: []diedata.LoadDef{
			{Name: "L1", NodeIndex: 1, Value: 40},
		},
	}
	n, err := network.New(cfg, data, zerolog.Nop())
	require.NoError(t, err)
	return n
}

func (s *FlowSuite) TestBaseCaseFlowBalancesInjection() {
	n := twoNodeNetwork(s.T())
	cache := solver.NewCache()
	result, err := solver.SolveBaseCase(n, cache)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 40.0, result.Flows[0], 1e-6)
	require.Empty(s.T(), result.Violations)
}

func (s *FlowSuite) TestThresholdViolationDetected() {
	n := twoNodeNetwork(s.T())
	n.Monitored[0].Forward.Set(network.Basecase, 10)
	cache := solver.NewCache()
	result, err := solver.SolveBaseCase(n, cache)
	require.NoError(s.T(), err)
	require.Len(s.T(), result.Violations, 1)
	require.Equal(s.T(), 0, result.Violations[0].Monitored)
}
