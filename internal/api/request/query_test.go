package request

import (
	"testing"
)

func TestParseScenario(t *testing.T) {
	t.Run("defaults to neutral", func(t *testing.T) {
		if got := ParseScenario(""); got != "neutral" {
			t.Errorf("Expected 'neutral', got '%s'", got)
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		if got := ParseScenario("  Optimistic "); got != "optimistic" {
			t.Errorf("Expected 'optimistic', got '%s'", got)
		}
	})

	t.Run("passes unknown scenarios through", func(t *testing.T) {
		if got := ParseScenario("moonshot"); got != "moonshot" {
			t.Errorf("Expected 'moonshot', got '%s'", got)
		}
	})
}

func TestParseBatchLimit(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		want    int
		wantErr bool
	}{
		{name: "default when empty", param: "", want: DefaultBatchLimit},
		{name: "valid limit", param: "10", want: 10},
		{name: "maximum", param: "500", want: MaxBatchLimit},
		{name: "zero", param: "0", wantErr: true},
		{name: "above maximum", param: "501", wantErr: true},
		{name: "not a number", param: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBatchLimit(tt.param)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got nil", tt.param)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected limit %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseFlag(t *testing.T) {
	t.Run("empty is false", func(t *testing.T) {
		got, err := ParseFlag("createMissing", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got {
			t.Error("Expected false for empty parameter")
		}
	})

	t.Run("parses true", func(t *testing.T) {
		got, err := ParseFlag("createMissing", "true")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !got {
			t.Error("Expected true")
		}
	})

	t.Run("invalid value names the parameter", func(t *testing.T) {
		_, err := ParseFlag("createMissing", "maybe")
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if err.Error() != "invalid createMissing: must be true or false" {
			t.Errorf("Unexpected error message: %s", err.Error())
		}
	})
}
