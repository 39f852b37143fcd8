package drag

import "testing"

func TestEventNames(t *testing.T) {
	tests := []struct {
		name  string
		gpu   bool
		phase Phase
		want  string
	}{
		{"gpu start", true, PhaseStart, "pointerdown"},
		{"gpu move", true, PhaseMove, "pointermove"},
		{"gpu end", true, PhaseEnd, "pointerup"},
		{"canvas start", false, PhaseStart, "mousedown"},
		{"canvas move", false, PhaseMove, "pressmove"},
		{"canvas end", false, PhaseEnd, "pressup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHelper()
			h.Init(tt.gpu)
			got, err := h.EventName(tt.phase)
			if err != nil {
				t.Fatalf("EventName(%v): %v", tt.phase, err)
			}
			if got != tt.want {
				t.Errorf("EventName(%v) = %q, want %q", tt.phase, got, tt.want)
			}
			if p := h.Phase(got); p != tt.phase {
				t.Errorf("Phase(%q) = %v, want %v", got, p, tt.phase)
			}
		})
	}
}

func TestPhaseOfOtherEngine(t *testing.T) {
	h := NewHelper()
	h.Init(true)
	if !h.IsGPU() {
		t.Error("IsGPU() = false after Init(true)")
	}
	if p := h.Phase("pressmove"); p != PhaseNone {
		t.Errorf("Phase(pressmove) under gpu = %v, want none", p)
	}
	if _, err := h.EventName(PhaseNone); err == nil {
		t.Error("EventName(PhaseNone) should fail")
	}
}

func TestDefaultsToCanvas(t *testing.T) {
	h := NewHelper()
	if h.IsGPU() || h.Events().Move != "pressmove" {
		t.Errorf("new helper events = %+v", h.Events())
	}
}
