package mcp

import (
	"testing"
)

func TestValidateMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Per-element", "per-element", false},
		{"Context", "context", false},
		{"Empty", "", false},
		{"Invalid", "batch", true},
		{"Wrong case", "Context", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVerbosity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Agent", "agent", false},
		{"Human", "human", false},
		{"Empty", "", false},
		{"Invalid", "verbose", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVerbosity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateVerbosity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRuleID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "eeb8d742-5213-44b2-bfc3-c454e4e03fbf", false},
		{"Empty", "", true},
		{"Whitespace", "  \t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRuleID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRuleID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && err.Error() != "rule_id must be non-empty" {
				t.Errorf("validateRuleID(%q) error message = %q", tt.input, err.Error())
			}
		})
	}
}

func TestValidateNoUnknownParams(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		errMsg  string
	}{
		{"All known", map[string]any{"element": map[string]any{}, "mode": "context"}, false, ""},
		{"Empty", map[string]any{}, false, ""},
		{"Unknown", map[string]any{"element": nil, "limit": 3}, true,
			"Unknown parameter 'limit'. Supported parameters: element, methodology, mode, verbosity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNoUnknownParams(tt.args, generateParams)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateNoUnknownParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("validateNoUnknownParams() error message = %q, want %q", err.Error(), tt.errMsg)
			}
		})
	}
}
