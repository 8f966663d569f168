package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the on-disk shape of the operator-facing knob panel: a YAML
// file distinct from the DIE network-data file. It carries only the
// tunables of Configuration, not the network topology itself.
type Settings struct {
	ComputationType string `yaml:"computation_type"`

	MainSolver       string `yaml:"main_solver"`
	PreventiveSolver string `yaml:"preventive_solver"`

	LossIterationLimit     int     `yaml:"loss_iteration_limit"`
	LossIterationThreshold float64 `yaml:"loss_iteration_threshold"`

	ItamEnabled bool `yaml:"itam_enabled"`

	AllowConnectivityBreakingContingencies bool `yaml:"allow_connectivity_breaking_contingencies"`
	AllowConnectivityBreakingParades        bool `yaml:"allow_connectivity_breaking_parades"`

	CostWeightPhaseShifter      float64 `yaml:"cost_weight_phase_shifter"`
	CostWeightHvdc              float64 `yaml:"cost_weight_hvdc"`
	CostWeightPreventiveFailure float64 `yaml:"cost_weight_preventive_failure"`

	ReferenceVoltage float64 `yaml:"reference_voltage"`

	CurativeActionLimit int `yaml:"curative_action_limit"`

	AdequacyCostOffset   float64 `yaml:"adequacy_cost_offset"`
	RedispatchCostOffset float64 `yaml:"redispatch_cost_offset"`

	IncidentProbability float64 `yaml:"incident_probability"`

	ValueOfLostLoadEnergy float64 `yaml:"value_of_lost_load_energy"`
	ValueOfLostLoadPower  float64 `yaml:"value_of_lost_load_power"`

	MaxSolverWallClockSeconds float64 `yaml:"max_solver_wall_clock_seconds"`

	BalanceEpsilon float64 `yaml:"balance_epsilon"`
	RandomSeed     int64   `yaml:"random_seed"`
}

var computationTypeByName = map[string]ComputationType{
	"OPF":                   OPF,
	"LOAD_FLOW":             LoadFlow,
	"OPF_WITHOUT_REDISPATCH": OPFWithoutRedispatch,
	"OPF_WITH_OVERLOAD":     OPFWithOverload,
}

// LoadSettings reads and validates a YAML settings file. It follows the
// read-unmarshal-validate shape of a typical operator config loader: a
// missing or malformed file returns a wrapped error, never a zero-value
// Configuration.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read settings %q: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("config: parse settings %q: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid settings %q: %w", path, err)
	}
	return &s, nil
}

// Validate checks that the settings are internally consistent enough to
// build a Configuration from.
func (s *Settings) Validate() error {
	if s.ComputationType != "" {
		if _, ok := computationTypeByName[s.ComputationType]; !ok {
			return fmt.Errorf("unknown computation_type %q", s.ComputationType)
		}
	}
	if s.ReferenceVoltage < 0 {
		return fmt.Errorf("reference_voltage must be >= 0, got %g", s.ReferenceVoltage)
	}
	if s.LossIterationLimit < 0 {
		return fmt.Errorf("loss_iteration_limit must be >= 0, got %d", s.LossIterationLimit)
	}
	if s.CurativeActionLimit < 0 {
		return fmt.Errorf("curative_action_limit must be >= 0, got %d", s.CurativeActionLimit)
	}
	return nil
}

// ToConfiguration builds the immutable Configuration handle from the
// parsed settings, applying the same defaults Configuration itself uses
// for an unset reference voltage (1.0, so admittance scaling becomes a
// no-op for networks that never specify a voltage base).
func (s *Settings) ToConfiguration() *Configuration {
	refV := s.ReferenceVoltage
	if refV == 0 {
		refV = 1.0
	}
	ct := OPF
	if mapped, ok := computationTypeByName[s.ComputationType]; ok {
		ct = mapped
	}
	return &Configuration{
		ComputationType:                        ct,
		MainSolver:                              s.MainSolver,
		PreventiveSolver:                        s.PreventiveSolver,
		LossIterationLimit:                      s.LossIterationLimit,
		LossIterationThreshold:                  s.LossIterationThreshold,
		ItamEnabled:                             s.ItamEnabled,
		AllowConnectivityBreakingContingencies:  s.AllowConnectivityBreakingContingencies,
		AllowConnectivityBreakingParades:        s.AllowConnectivityBreakingParades,
		CostWeightPhaseShifter:                  s.CostWeightPhaseShifter,
		CostWeightHvdc:                          s.CostWeightHvdc,
		CostWeightPreventiveFailure:             s.CostWeightPreventiveFailure,
		ReferenceVoltage:                        refV,
		CurativeActionLimit:                     s.CurativeActionLimit,
		AdequacyCostOffset:                      s.AdequacyCostOffset,
		RedispatchCostOffset:                    s.RedispatchCostOffset,
		IncidentProbability:                     s.IncidentProbability,
		ValueOfLostLoadEnergy:                   s.ValueOfLostLoadEnergy,
		ValueOfLostLoadPower:                    s.ValueOfLostLoadPower,
		MaxSolverWallClockSeconds:               s.MaxSolverWallClockSeconds,
		BalanceEpsilon:                          s.BalanceEpsilon,
		RandomSeed:                              s.RandomSeed,
	}
}
