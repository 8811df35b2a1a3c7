package motioncore

import "testing"

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"core_xy": true}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxStepFrequency != defaultMaxStepFrequency {
		t.Fatalf("MaxStepFrequency = %d, want default %d", cfg.MaxStepFrequency, defaultMaxStepFrequency)
	}
	if cfg.FCPU != defaultFCPU {
		t.Fatalf("FCPU = %d, want default %d", cfg.FCPU, defaultFCPU)
	}
	for i, a := range cfg.Axes {
		if a.StepsPerMM != defaultStepsPerMM {
			t.Fatalf("axis %d StepsPerMM = %f, want default %f", i, a.StepsPerMM, defaultStepsPerMM)
		}
	}
	if !cfg.CoreXY {
		t.Fatal("explicit core_xy:true should survive default-filling")
	}
}

func TestLoadConfigPreservesExplicitValues(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"max_step_frequency": 80000, "axes": [{"steps_per_mm": 160}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxStepFrequency != 80000 {
		t.Fatalf("MaxStepFrequency = %d, want 80000", cfg.MaxStepFrequency)
	}
	if cfg.Axes[0].StepsPerMM != 160 {
		t.Fatalf("axis 0 StepsPerMM = %f, want 160", cfg.Axes[0].StepsPerMM)
	}
}

func TestDefaultCartesianConfigIsReady(t *testing.T) {
	cfg := DefaultCartesianConfig()
	if !cfg.AbortOnHit {
		t.Fatal("the stock cartesian config should abort on endstop hit")
	}
	if cfg.Axes[2].StepsPerMM != 400 {
		t.Fatalf("Z StepsPerMM = %f, want 400", cfg.Axes[2].StepsPerMM)
	}
}

func TestLoadConfigRejectsInvalidJSON(t *testing.T) {
	if _, err := LoadConfig([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
