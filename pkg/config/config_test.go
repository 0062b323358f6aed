package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/diaglens/pkg/errors"
	"github.com/matzehuels/diaglens/pkg/rules"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
profile = "narrow"

[rules.max-nodes]
threshold = 40.0
severity = "error"

[rules.max-edges]
enabled = false

[calibration]
char_width = 9.0
node_spacing_x = 60.0
node_spacing_y = 40.0
node_height = 40.0
message_gap = 50.0
header_height = 80.0
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Profile != "narrow" {
		t.Errorf("profile = %q, want narrow", f.Profile)
	}
	if rc := f.Rules["max-nodes"]; rc.Threshold == nil || *rc.Threshold != 40 {
		t.Errorf("max-nodes threshold = %+v", rc)
	}
	if rc := f.Rules["max-edges"]; rc.Enabled == nil || *rc.Enabled {
		t.Errorf("max-edges should be disabled: %+v", rc)
	}
	if f.Calibration == nil || f.Calibration.CharWidth != 9 {
		t.Errorf("calibration = %+v", f.Calibration)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "profile = [unclosed"},
		{"bad severity", "[rules.max-nodes]\nseverity = \"fatal\""},
		{"negative threshold", "[rules.max-nodes]\nthreshold = -5.0"},
		{"non-increasing tiers", `
[profiles.flat]
target_width = 100.0
target_height = 100.0
[profiles.flat.width]
info = 100.0
warning = 100.0
error = 100.0
[profiles.flat.height]
info = 100.0
warning = 200.0
error = 300.0
`},
		{"bad profile name", `
[profiles."Bad Name"]
target_width = 100.0
target_height = 100.0
`},
		{"bad calibration", "[calibration]\nchar_width = 0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "docs", "guides")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, FileName)
	if err := os.WriteFile(want, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	got, ok := Find(nested)
	if !ok || got != want {
		t.Errorf("Find = %q/%v, want %q", got, ok, want)
	}
}

func TestFindMissing(t *testing.T) {
	if _, ok := Find(t.TempDir()); ok {
		t.Error("Find should report no config in an empty tree")
	}
}

func TestResolveNilFile(t *testing.T) {
	var f *File
	resolved, err := f.Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ProfileName != "default" {
		t.Errorf("profile = %q, want default", resolved.ProfileName)
	}
	if resolved.Rules.Viewport.TargetWidth != 1500 {
		t.Errorf("target width = %v, want 1500", resolved.Rules.Viewport.TargetWidth)
	}
	if resolved.Calibration.CharWidth != 8 {
		t.Errorf("calibration = %+v, want defaults", resolved.Calibration)
	}
}

func TestResolvePrecedence(t *testing.T) {
	threshold := 1000.0
	file := &File{
		Profile:  "wide",
		Viewport: &rules.Viewport{TargetWidth: 700, TargetHeight: 500, Width: rules.Tiers{Info: 840, Warning: 1050, Error: 1260}, Height: rules.Tiers{Info: 600, Warning: 750, Error: 900}},
		Rules:    map[string]rules.RuleConfig{"max-width": {Threshold: &threshold}},
	}

	// 1. CLI override wins over everything.
	resolved, err := file.Resolve(Options{Profile: "narrow"})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ProfileName != "narrow" || resolved.Rules.Viewport.TargetWidth != 800 {
		t.Errorf("CLI override: %q %v", resolved.ProfileName, resolved.Rules.Viewport.TargetWidth)
	}

	// 2. Direct viewport beats named profile and legacy thresholds.
	resolved, err = file.Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ProfileName != "custom" || resolved.Rules.Viewport.TargetWidth != 700 {
		t.Errorf("direct viewport: %q %v", resolved.ProfileName, resolved.Rules.Viewport.TargetWidth)
	}

	// 3. Named profile beats legacy thresholds.
	file.Viewport = nil
	resolved, err = file.Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ProfileName != "wide" || resolved.Rules.Viewport.TargetWidth != 1920 {
		t.Errorf("named profile: %q %v", resolved.ProfileName, resolved.Rules.Viewport.TargetWidth)
	}

	// 4. Legacy flat threshold synthesizes a ladder.
	file.Profile = ""
	resolved, err = file.Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ProfileName != "legacy" {
		t.Errorf("legacy profile name = %q", resolved.ProfileName)
	}
	vp := resolved.Rules.Viewport
	if vp.TargetWidth != 1000 || vp.Width.Info != 1200 || vp.Width.Warning != 1500 || vp.Width.Error != 1800 {
		t.Errorf("legacy ladder = %+v", vp.Width)
	}
	// Height keeps the default ladder when only max-width is set.
	if vp.Height != rules.DefaultViewport().Height {
		t.Errorf("legacy height = %+v, want default", vp.Height)
	}

	// 5. Nothing set: default.
	file.Rules = nil
	resolved, err = file.Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.ProfileName != "default" {
		t.Errorf("default fallback: %q", resolved.ProfileName)
	}
}

func TestResolveUnknownProfile(t *testing.T) {
	f := &File{}
	_, err := f.Resolve(Options{Profile: "ultrawide"})
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidProfile {
		t.Errorf("code = %v, want INVALID_PROFILE", errors.GetCode(err))
	}
}

func TestResolveFileProfileFromProfilesTable(t *testing.T) {
	f := &File{
		Profile: "team",
		Profiles: map[string]rules.Viewport{
			"team": {TargetWidth: 1100, TargetHeight: 900, Width: rules.Tiers{Info: 1320, Warning: 1650, Error: 1980}, Height: rules.Tiers{Info: 1080, Warning: 1350, Error: 1620}},
		},
	}
	resolved, err := f.Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Rules.Viewport.TargetWidth != 1100 {
		t.Errorf("declared profile not used: %v", resolved.Rules.Viewport.TargetWidth)
	}
	// The resolved viewport carries the selected profile name.
	if resolved.Rules.Viewport.Name != "team" {
		t.Errorf("viewport name = %q, want team", resolved.Rules.Viewport.Name)
	}
}

func TestProfileNames(t *testing.T) {
	names := ProfileNames()
	want := []string{"default", "narrow", "presentation", "wide"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
