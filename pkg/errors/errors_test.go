package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(ErrCodeInvalidDialect, "unknown dialect: %s", "pie")
	if err.Code != ErrCodeInvalidDialect {
		t.Errorf("code = %v", err.Code)
	}
	if got := err.Error(); got != "INVALID_DIALECT: unknown dialect: pie" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := Wrap(ErrCodeFileNotFound, cause, "failed to read %s", "a.md")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeTimeout, "took too long")
	if !Is(err, ErrCodeTimeout) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeTimeout) {
		t.Error("plain errors carry no code")
	}
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := New(ErrCodeRunNotFound, "run not found")
	outer := fmt.Errorf("fetch run: %w", inner)
	if GetCode(outer) != ErrCodeRunNotFound {
		t.Errorf("code = %v", GetCode(outer))
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("plain errors yield an empty code")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "no diagrams in request")
	if got := UserMessage(err); got != "no diagrams in request" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{"simple", "docs/arch.md", true},
		{"nested", "a/b/c/d.mmd", true},
		{"empty", "", false},
		{"absolute", "/etc/passwd", false},
		{"traversal", "../secret.md", false},
		{"embedded traversal", "docs/../../etc", false},
		{"backslash", "docs\\arch.md", false},
		{"null byte", "docs/a\x00.md", false},
		{"control char", "docs/a\tb.md", false},
		{"too long", strings.Repeat("a", 501), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.path)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if GetCode(err) != ErrCodeInvalidPath {
					t.Errorf("code = %v", GetCode(err))
				}
			}
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	for _, name := range []string{"default", "narrow", "team-wide", "p1"} {
		if err := ValidateProfileName(name); err != nil {
			t.Errorf("ValidateProfileName(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"", "Bad Name", "1starts-with-digit", "-leading-dash", strings.Repeat("a", 65)} {
		if err := ValidateProfileName(name); err == nil {
			t.Errorf("ValidateProfileName(%q) should fail", name)
		}
	}
}

func TestValidateRuleName(t *testing.T) {
	if err := ValidateRuleName("max-nodes"); err != nil {
		t.Errorf("ValidateRuleName = %v", err)
	}
	for _, name := range []string{"", "Max-Nodes", "max_nodes"} {
		if err := ValidateRuleName(name); err == nil {
			t.Errorf("ValidateRuleName(%q) should fail", name)
		}
	}
}
