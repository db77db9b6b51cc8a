package phase

import "testing"

func TestClassifyZones(t *testing.T) {
	cases := []struct {
		name     string
		z, sigma float64
		want     Label
	}{
		{"dead low z", 0.2, 0.5, LabelDeadZone},
		{"dead boundary exclusive", 0.3, 0.5, LabelSafeZone},
		{"danger high z low sigma", 0.8, 0.1, LabelDangerZone},
		{"danger z boundary exclusive", 0.7, 0.1, LabelSafeZone},
		{"danger sigma boundary exclusive", 0.8, 0.15, LabelSafeZone},
		{"safe mid map", 0.85, 0.30, LabelSafeZone},
		{"safe high sigma", 0.95, 0.9, LabelSafeZone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.z, tc.sigma, DefaultConfig())
			if got.Label != tc.want {
				t.Fatalf("Classify(%v, %v)=%s, want %s", tc.z, tc.sigma, got.Label, tc.want)
			}
			if got.Message == "" {
				t.Fatal("every label carries an interpretation message")
			}
		})
	}
}

func TestClassifyPrecedenceDeadBeforeDanger(t *testing.T) {
	// Sigma is starved, but low Z must win: dead zone, not danger zone.
	got := Classify(0.2, 0.05, DefaultConfig())
	if got.Label != LabelDeadZone {
		t.Fatalf("got %s, want %s (dead-zone check runs first)", got.Label, LabelDeadZone)
	}
}

func TestClassifyTotalOverUnitSquare(t *testing.T) {
	cfg := DefaultConfig()
	known := map[Label]bool{LabelDeadZone: true, LabelDangerZone: true, LabelSafeZone: true}
	for zi := 0; zi <= 100; zi++ {
		for si := 0; si <= 100; si++ {
			got := Classify(float64(zi)/100, float64(si)/100, cfg)
			if !known[got.Label] {
				t.Fatalf("unknown label %q at (%d, %d)", got.Label, zi, si)
			}
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	a := Classify(0.5, 0.5, DefaultConfig())
	b := Classify(0.5, 0.5, DefaultConfig())
	if a != b {
		t.Fatal("classification must be deterministic")
	}
}
