// Package metrix is a steady-state security-constrained DC optimal
// power-flow engine for electrical transmission networks.
//
// Given a base network state and a set of operating variants, it computes
// for each variant a minimum-cost set of preventive actions (generator
// redispatch, phase-shifter angles, HVDC setpoints, load shedding) such
// that every monitored branch stays within its thermal limit in the
// healthy state and after each configured contingency, optionally
// admitting curative remedial actions.
//
// This module is the variant-processing core: the in-memory network model,
// the connectivity analysis that validates contingencies, the variant
// application/reset protocol, and the contract surface handed to an
// external mixed-integer linear-programming solver. Parsing of the DIE
// network-data file and the variant file, the MILP solver itself, and
// result formatting are external collaborators; this module only defines
// the shapes they exchange.
//
// The engine is organized into cooperating packages, each importable on
// its own:
//
//	diedata/      — typed shape of the external DIE network-data contract
//	config/       — the Configuration store and the operator settings loader
//	network/      — the typed graph: nodes, branches, phase-shifters, HVDCs,
//	                generators, loads, monitored elements, contingencies,
//	                and lost-pocket construction
//	connectivity/ — union-find zone analysis
//	variant/      — the variant applier, merit-order balance, reset protocol
//	parade/       — the remedial-action (parade) builder and file reader
//	matrix/       — dense linear algebra used to assemble influence rows
//	solver/       — the contract surface handed to the external MILP solver
//	engine/       — orchestration: processes variants in sequence
//
// See SPEC_FULL.md in the module root for the full design.
package metrix
