package errors

import (
	"strings"
	"testing"
)

func TestValidateLevelName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"plain title", "Rose Garden", ""},
		{"punctuated title", "PA // Heracles v2!", ""},
		{"unicode title", "夜に駆ける", ""},
		{"exactly at limit", strings.Repeat("a", 256), ""},
		{"empty name", "", ErrCodeInvalidInput},
		{"one past limit", strings.Repeat("a", 257), ErrCodeInvalidInput},
		{"bell character", "ding\adong", ErrCodeInvalidInput},
		{"embedded newline", "line one\nline two", ErrCodeInvalidInput},
		{"nul byte", "bad\x00name", ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(ValidateLevelName(tt.input)); got != tt.wantCode {
				t.Errorf("ValidateLevelName(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"http", "http://example.com/level.adofai", ""},
		{"https", "https://cdn.example.com/packs/heracles.adofai", ""},
		{"empty url", "", ErrCodeInvalidInput},
		{"missing scheme", "example.com/level.adofai", ErrCodeInvalidInput},
		{"local file scheme", "file:///etc/passwd", ErrCodeInvalidInput},
		{"ftp scheme", "ftp://example.com/level", ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(ValidateURL(tt.input)); got != tt.wantCode {
				t.Errorf("ValidateURL(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

func TestValidateLevelPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"relative path", "levels/heracles.adofai", ""},
		{"absolute path", "/home/user/levels/heracles.adofai", ""},
		{"spaces in filename", "My Level.adofai", ""},
		{"exactly at limit", strings.Repeat("p", 500), ""},
		{"empty path", "", ErrCodeInvalidPath},
		{"one past limit", strings.Repeat("p", 501), ErrCodeInvalidPath},
		{"nul byte", "levels/a\x00b.adofai", ErrCodeInvalidPath},
		{"escape sequence", "levels/\x1b[31mred", ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(ValidateLevelPath(tt.input)); got != tt.wantCode {
				t.Errorf("ValidateLevelPath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}
