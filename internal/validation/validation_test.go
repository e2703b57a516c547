package validation

import (
	"strings"
	"testing"
)

type predictForm struct {
	Trend string `json:"trend" validate:"required,max=200,trend"`
	Date  string `json:"date" validate:"required,max=64"`
}

func TestValidateTrend(t *testing.T) {
	tests := []struct {
		name  string
		trend string
		want  bool
	}{
		{"simple", "GenZ tech", true},
		{"unicode", "Ästhetik 日本", true},
		{"punctuation", "GenZ social media (2024)", true},
		{"empty string", "", false},
		{"max length", strings.Repeat("a", MaxTrendLength), true},
		{"too long", strings.Repeat("a", MaxTrendLength+1), false},
		{"newline", "GenZ\ntech", false},
		{"null byte", "GenZ\x00tech", false},
		{"tab", "GenZ\ttech", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTrend(tt.trend); got != tt.want {
				t.Errorf("ValidateTrend(%q) = %v, want %v", tt.trend, got, tt.want)
			}
		})
	}
}

func TestNormalizeTrend(t *testing.T) {
	if got := NormalizeTrend("  GenZ tech \t"); got != "GenZ tech" {
		t.Errorf("NormalizeTrend() = %q", got)
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		form    predictForm
		valid   bool
		wantMsg string
	}{
		{"valid", predictForm{Trend: "GenZ tech", Date: "2024-01-01"}, true, ""},
		{"missing trend", predictForm{Date: "2024-01-01"}, false, "trend is required"},
		{"missing date", predictForm{Trend: "GenZ tech"}, false, "date is required"},
		{"date too long", predictForm{Trend: "GenZ tech", Date: strings.Repeat("1", 65)}, false, "date must be at most 64 characters"},
		{"control characters", predictForm{Trend: "GenZ\ntech", Date: "2024-01-01"}, false, "trend contains invalid characters"},
		// Format is checked by the predictor, not the validator.
		{"unparseable date passes", predictForm{Trend: "GenZ tech", Date: "tomorrow"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateStruct(&tt.form)
			if valid != tt.valid {
				t.Errorf("ValidateStruct() valid = %v, want %v (msg %q)", valid, tt.valid, msg)
			}
			if msg != tt.wantMsg {
				t.Errorf("ValidateStruct() msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestValidatorIsShared(t *testing.T) {
	if Validator() != Validator() {
		t.Error("Validator() should return the same instance")
	}
}
