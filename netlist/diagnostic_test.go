package netlist

import "testing"

func TestDiagnosticConfigShouldReport(t *testing.T) {
	tests := []struct {
		name   string
		config DiagnosticConfig
		code   string
		sev    Severity
		want   bool
	}{
		// Strict mode reports everything
		{"strict/fatal", StrictConfig(), "test", SeverityFatal, true},
		{"strict/info", StrictConfig(), "test", SeverityInfo, true},

		// Normal mode (level 4): report sev 0-4
		{"normal/internal", DefaultConfig(), "test", SeverityInternal, true},
		{"normal/sorry", DefaultConfig(), "test", SeveritySorry, true},
		{"normal/warning", DefaultConfig(), "test", SeverityWarning, true},
		{"normal/info", DefaultConfig(), "test", SeverityInfo, false},

		// Quiet mode (level 3): errors only
		{"quiet/error", QuietConfig(), "test", SeverityError, true},
		{"quiet/warning", QuietConfig(), "test", SeverityWarning, false},
		{"quiet/ignored", QuietConfig(), "multiple-drivers", SeverityError, false},

		// Silent mode suppresses everything
		{"silent/fatal", DiagnosticConfig{Level: StrictnessSilent}, "test", SeverityFatal, false},
		{"silent/info", DiagnosticConfig{Level: StrictnessSilent}, "test", SeverityInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.ShouldReport(tt.code, tt.sev)
			if got != tt.want {
				t.Errorf("ShouldReport(%q, %v) = %v, want %v", tt.code, tt.sev, got, tt.want)
			}
		})
	}
}

func TestDiagnosticConfigShouldReportIgnore(t *testing.T) {
	cfg := DiagnosticConfig{
		Level:  StrictnessStrict,
		Ignore: []string{"implicit-net", "part-select-*"},
	}

	if cfg.ShouldReport("implicit-net", SeverityWarning) {
		t.Error("ignored code should not be reported")
	}
	if cfg.ShouldReport("part-select-range", SeverityError) {
		t.Error("glob-matched code should not be reported")
	}
	if !cfg.ShouldReport("repeat-zero", SeverityError) {
		t.Error("non-matching code should be reported")
	}
}

func TestDiagnosticConfigShouldReportOverrides(t *testing.T) {
	cfg := DiagnosticConfig{
		Level: StrictnessQuiet,
		Overrides: map[string]Severity{
			"implicit-net": SeverityError,
		},
	}

	if cfg.ShouldReport("other-warning", SeverityWarning) {
		t.Error("warning should not be reported at quiet level")
	}
	if !cfg.ShouldReport("implicit-net", SeverityWarning) {
		t.Error("overridden code should be reported (upgraded to error)")
	}
	if got := cfg.Severity("implicit-net", SeverityWarning); got != SeverityError {
		t.Errorf("Severity = %v, want error", got)
	}
}

func TestDiagnosticConfigShouldFail(t *testing.T) {
	tests := []struct {
		name   string
		config DiagnosticConfig
		sev    Severity
		want   bool
	}{
		{"default/fatal", DefaultConfig(), SeverityFatal, true},
		{"default/sorry", DefaultConfig(), SeveritySorry, true},
		{"default/warning", DefaultConfig(), SeverityWarning, false},
		{"strict/warning", StrictConfig(), SeverityWarning, true},
		{"strict/info", StrictConfig(), SeverityInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.ShouldFail(tt.sev)
			if got != tt.want {
				t.Errorf("ShouldFail(%v) = %v, want %v", tt.sev, got, tt.want)
			}
		})
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"*", "anything", true},
		{"*", "", true},
		{"repeat-*", "repeat-zero", true},
		{"repeat-*", "repeat-", true},
		{"repeat-*", "repeat", false},
		{"*-range", "part-select-range", true},
		{"*-range", "range-x", false},
		{"exact", "exact", true},
		{"exact", "other", false},
		{"", "", true},
		{"", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.s, func(t *testing.T) {
			got := matchGlob(tt.pattern, tt.s)
			if got != tt.want {
				t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
			}
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Severity: SeverityError, Module: "top", Line: 3, Column: 7, Message: "bad"}, "[error] top:3:7: bad"},
		{Diagnostic{Severity: SeverityWarning, Module: "top", Line: 3, Message: "hmm"}, "[warning] top:3: hmm"},
		{Diagnostic{Severity: SeverityInfo, Module: "top", Message: "fyi"}, "[info] top: fyi"},
		{Diagnostic{Severity: SeveritySorry, Message: "nope"}, "[sorry] nope"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"warning", "WARNING", "4", " warning "} {
		got, err := ParseSeverity(s)
		if err != nil || got != SeverityWarning {
			t.Errorf("ParseSeverity(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Error("expected error for unknown severity")
	}
}
