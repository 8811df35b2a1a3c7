// Package motioncore ties the trapezoid generator, Bresenham tracer,
// endstop monitor, and position counters into the single tick-context
// entry point a hardware timer (or its host emulation) drives.
package motioncore

import "encoding/json"

// AxisConfig carries the per-axis configuration enumeration from spec
// section 6: polarity, steps-per-mm, and homing/endstop wiring hints.
// Pin assignment itself lives in the chosen stepsink backend, not here.
type AxisConfig struct {
	InvertDir     bool    `json:"invert_dir"`
	InvertStep    bool    `json:"invert_step_pin"`
	StepsPerMM    float64 `json:"steps_per_mm"`
	HomingDir     int32   `json:"homing_dir"` // +1, -1, or 0 (no endstop)
	EndstopPullup bool    `json:"endstop_pullup"`
}

// MachineConfig is the single JSON document describing a machine. It
// covers exactly the configuration enumeration in spec section 6 plus
// the per-axis scaling get_position_mm needs.
type MachineConfig struct {
	MaxStepFrequency uint32 `json:"max_step_frequency"`
	FCPU             uint32 `json:"f_cpu"`

	Axes [4]AxisConfig `json:"axes"` // indexed by core.Axis: X, Y, Z, E

	CoreXY             bool `json:"core_xy"`
	DualXCarriage      bool `json:"dual_x_carriage"`
	YDualStepperDriver bool `json:"y_dual_stepper_drivers"`
	ZDualStepperDriver bool `json:"z_dual_stepper_drivers"`

	AdvanceEnabled bool `json:"advance_enabled"`
	ZLateEnable    bool `json:"z_late_enable"`
	AbortOnHit     bool `json:"abort_on_endstop_hit"`
}

const (
	defaultMaxStepFrequency = 40000
	defaultFCPU             = 2_000_000
	defaultStepsPerMM       = 80.0
)

// applyDefaults fills unset numeric fields with sensible defaults,
// matching the pattern the rest of this stack uses for its standalone
// configuration loader.
func (c *MachineConfig) applyDefaults() {
	if c.MaxStepFrequency == 0 {
		c.MaxStepFrequency = defaultMaxStepFrequency
	}
	if c.FCPU == 0 {
		c.FCPU = defaultFCPU
	}
	for i := range c.Axes {
		if c.Axes[i].StepsPerMM == 0 {
			c.Axes[i].StepsPerMM = defaultStepsPerMM
		}
	}
}

// LoadConfig parses a JSON machine configuration document and fills in
// defaults for anything left unset.
func LoadConfig(data []byte) (*MachineConfig, error) {
	var cfg MachineConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultCartesianConfig returns a ready-to-run configuration for local
// testing and the demo harness: a cartesian machine, no dual drivers, no
// pressure advance, abort-on-hit enabled.
func DefaultCartesianConfig() *MachineConfig {
	cfg := &MachineConfig{
		Axes: [4]AxisConfig{
			{StepsPerMM: 80, HomingDir: -1},
			{StepsPerMM: 80, HomingDir: -1},
			{StepsPerMM: 400, HomingDir: -1},
			{StepsPerMM: 415},
		},
		AbortOnHit: true,
	}
	cfg.applyDefaults()
	return cfg
}
