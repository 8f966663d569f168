package engine_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/metrix-opf/metrix/config"
	"github.com/metrix-opf/metrix/diedata"
	"github.com/metrix-opf/metrix/engine"
	"github.com/metrix-opf/metrix/variant"
)

type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func twoNodeData() *diedata.NetworkData {
	return &diedata.NetworkData{
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
}

func (s *EngineSuite) TestProcessVariantResetsBetweenRuns() {
	cfg := &config.Configuration{ReferenceVoltage: 1}
	e, err := engine.New(cfg, twoNodeData(), nil, zerolog.Nop())
	require.NoError(s.T(), err)

	v := &variant.Variant{
		Number:     1,
		LoadValues: []variant.LoadValue{{Load: "L1", Value: 70}},
	}
	outcome := e.ProcessVariant(v)
	require.NoError(s.T(), outcome.Err)
	require.InDelta(s.T(), 70.0, outcome.Result.Flows[0], 1e-6)

	require.Equal(s.T(), 40.0, e.Network.Loads[0].Value)
}

func (s *EngineSuite) TestProcessVariantsRespectsFirstAndCount() {
	cfg := &config.Configuration{ReferenceVoltage: 1}
	e, err := engine.New(cfg, twoNodeData(), nil, zerolog.Nop())
	require.NoError(s.T(), err)

	variants := []*variant.Variant{
		{Number: 1, LoadValues: []variant.LoadValue{{Load: "L1", Value: 10}}},
		{Number: 2, LoadValues: []variant.LoadValue{{Load: "L1", Value: 20}}},
		{Number: 3, LoadValues: []variant.LoadValue{{Load: "L1", Value: 30}}},
	}
	outcomes := e.ProcessVariants(variants, 2, 1)
	require.Len(s.T(), outcomes, 1)
	require.Equal(s.T(), 2, outcomes[0].Number)
}
