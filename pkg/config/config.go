// Package config loads the optional .diaglens.toml file and resolves it,
// together with CLI overrides and built-in viewport profiles, into the
// read-only configuration the rule engine consumes.
//
// Resolution precedence for the active viewport, highest first:
//
//  1. command-line profile override
//  2. direct [viewport] values in the config file
//  3. the file's named profile selection
//  4. legacy per-rule width/height thresholds
//  5. the built-in default profile
//
// The rule engine never merges anything itself; it only ever sees the
// fully resolved result.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/diaglens/pkg/errors"
	"github.com/matzehuels/diaglens/pkg/estimate"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// FileName is the config file searched for in the working directory and
// its ancestors.
const FileName = ".diaglens.toml"

// File mirrors the on-disk TOML structure.
type File struct {
	// Profile selects a named viewport profile, built-in or declared in
	// [profiles.<name>].
	Profile string `toml:"profile"`

	// Viewport sets the active viewport directly, overriding any profile.
	Viewport *rules.Viewport `toml:"viewport"`

	Profiles map[string]rules.Viewport   `toml:"profiles"`
	Rules    map[string]rules.RuleConfig `toml:"rules"`

	// Calibration tunes the pixel constants of the dimension estimator.
	Calibration *estimate.Calibration `toml:"calibration"`
}

// Resolved is the outcome of config resolution.
type Resolved struct {
	Rules       *rules.Config
	Calibration estimate.Calibration
	ProfileName string
}

// Options carries command-line overrides into resolution.
type Options struct {
	// Profile overrides the file's profile selection when non-empty.
	Profile string
}

// builtinProfiles are the shipped viewport profiles. Width ladders sit at
// 1.2/~1.47/~1.67 times the target; height ladders at 1.2/1.5/1.8.
func builtinProfiles() map[string]rules.Viewport {
	return map[string]rules.Viewport{
		"default": rules.DefaultViewport(),
		"narrow": {
			Name:         "narrow",
			TargetWidth:  800,
			TargetHeight: 640,
			Width:        rules.Tiers{Info: 960, Warning: 1200, Error: 1440},
			Height:       rules.Tiers{Info: 768, Warning: 960, Error: 1152},
		},
		"wide": {
			Name:         "wide",
			TargetWidth:  1920,
			TargetHeight: 1440,
			Width:        rules.Tiers{Info: 2304, Warning: 2880, Error: 3456},
			Height:       rules.Tiers{Info: 1728, Warning: 2160, Error: 2592},
		},
		"presentation": {
			Name:         "presentation",
			TargetWidth:  1280,
			TargetHeight: 720,
			Width:        rules.Tiers{Info: 1536, Warning: 1920, Error: 2304},
			Height:       rules.Tiers{Info: 864, Warning: 1080, Error: 1296},
		},
	}
}

// ProfileNames returns the built-in profile names, sorted.
func ProfileNames() []string {
	profiles := builtinProfiles()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns a built-in profile by name.
func Profile(name string) (rules.Viewport, bool) {
	vp, ok := builtinProfiles()[name]
	return vp, ok
}

// Load reads and validates a config file.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Find walks from dir toward the filesystem root looking for FileName.
func Find(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (f *File) validate() error {
	for name, rc := range f.Rules {
		if err := errors.ValidateRuleName(name); err != nil {
			return err
		}
		if rc.Severity != "" {
			if _, ok := rules.ParseSeverity(string(rc.Severity)); !ok {
				return errors.New(errors.ErrCodeInvalidConfig, "rule %s: unknown severity %q", name, rc.Severity)
			}
		}
		if rc.Threshold != nil && *rc.Threshold < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "rule %s: threshold must be non-negative", name)
		}
	}
	for name, vp := range f.Profiles {
		if err := errors.ValidateProfileName(name); err != nil {
			return err
		}
		if err := validateViewport(name, vp); err != nil {
			return err
		}
	}
	if f.Viewport != nil {
		if err := validateViewport("viewport", *f.Viewport); err != nil {
			return err
		}
	}
	if c := f.Calibration; c != nil {
		if c.CharWidth <= 0 || c.NodeSpacingX < 0 || c.NodeSpacingY < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "calibration constants must be positive")
		}
	}
	return nil
}

func validateViewport(name string, vp rules.Viewport) error {
	if !vp.Width.Valid() || !vp.Height.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig,
			"profile %s: threshold tiers must be positive and strictly increasing", name)
	}
	return nil
}

// Resolve merges file values, overrides, and defaults into the final
// configuration. A nil receiver resolves to pure defaults.
func (f *File) Resolve(opts Options) (*Resolved, error) {
	if f == nil {
		f = &File{}
	}

	vp, name, err := f.resolveViewport(opts)
	if err != nil {
		return nil, err
	}
	vp.Name = name

	calibration := estimate.DefaultCalibration()
	if f.Calibration != nil {
		calibration = *f.Calibration
	}

	ruleCfg := make(map[string]rules.RuleConfig, len(f.Rules))
	for rule, rc := range f.Rules {
		ruleCfg[rule] = rc
	}

	return &Resolved{
		Rules:       &rules.Config{Rules: ruleCfg, Viewport: vp},
		Calibration: calibration,
		ProfileName: name,
	}, nil
}

func (f *File) resolveViewport(opts Options) (rules.Viewport, string, error) {
	lookup := func(name string) (rules.Viewport, bool) {
		if vp, ok := f.Profiles[name]; ok {
			return vp, true
		}
		vp, ok := builtinProfiles()[name]
		return vp, ok
	}

	// 1. CLI override.
	if opts.Profile != "" {
		vp, ok := lookup(opts.Profile)
		if !ok {
			return rules.Viewport{}, "", errors.New(errors.ErrCodeInvalidProfile, "unknown profile: %s", opts.Profile)
		}
		return vp, opts.Profile, nil
	}

	// 2. Direct viewport values in the file.
	if f.Viewport != nil {
		return *f.Viewport, "custom", nil
	}

	// 3. The file's named profile.
	if f.Profile != "" {
		vp, ok := lookup(f.Profile)
		if !ok {
			return rules.Viewport{}, "", errors.New(errors.ErrCodeInvalidProfile, "unknown profile: %s", f.Profile)
		}
		return vp, f.Profile, nil
	}

	// 4. Legacy per-rule thresholds: an older config shape carried a flat
	// max-width/max-height threshold; build single-anchor ladders from it.
	legacy := rules.DefaultViewport()
	found := false
	if rc, ok := f.Rules["max-width"]; ok && rc.Threshold != nil {
		t := *rc.Threshold
		legacy.TargetWidth = t
		legacy.Width = rules.Tiers{Info: t * 1.2, Warning: t * 1.5, Error: t * 1.8}
		found = true
	}
	if rc, ok := f.Rules["max-height"]; ok && rc.Threshold != nil {
		t := *rc.Threshold
		legacy.TargetHeight = t
		legacy.Height = rules.Tiers{Info: t * 1.2, Warning: t * 1.5, Error: t * 1.8}
		found = true
	}
	if found {
		return legacy, "legacy", nil
	}

	// 5. Built-in default.
	return rules.DefaultViewport(), "default", nil
}
