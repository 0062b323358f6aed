package rules

// Tiers is a strictly increasing three-step pixel threshold ladder. A
// measured dimension is graded by the highest tier it exceeds.
type Tiers struct {
	Info    float64 `json:"info" toml:"info"`
	Warning float64 `json:"warning" toml:"warning"`
	Error   float64 `json:"error" toml:"error"`
}

// Grade returns the severity for a measured value, or false when the value
// stays below every tier.
func (t Tiers) Grade(v float64) (Severity, bool) {
	switch {
	case v > t.Error:
		return SeverityError, true
	case v > t.Warning:
		return SeverityWarning, true
	case v > t.Info:
		return SeverityInfo, true
	}
	return "", false
}

// Valid reports whether the ladder is strictly increasing and positive.
func (t Tiers) Valid() bool {
	return t.Info > 0 && t.Warning > t.Info && t.Error > t.Warning
}

// Viewport is a resolved rendering context: the dimensions a diagram is
// expected to fit, plus the graded overflow ladders.
type Viewport struct {
	Name         string  `json:"name" toml:"name"`
	TargetWidth  float64 `json:"target_width" toml:"target_width"`
	TargetHeight float64 `json:"target_height" toml:"target_height"`
	Width        Tiers   `json:"width" toml:"width"`
	Height       Tiers   `json:"height" toml:"height"`
}

// DefaultViewport approximates a full-width documentation page in a
// desktop browser window.
func DefaultViewport() Viewport {
	return Viewport{
		Name:         "default",
		TargetWidth:  1500,
		TargetHeight: 1200,
		Width:        Tiers{Info: 1800, Warning: 2200, Error: 2500},
		Height:       Tiers{Info: 1440, Warning: 1800, Error: 2160},
	}
}

// RuleConfig is the resolved per-rule configuration. Nil pointer fields
// mean "use the rule's built-in default".
type RuleConfig struct {
	Enabled   *bool    `json:"enabled,omitempty" toml:"enabled"`
	Severity  Severity `json:"severity,omitempty" toml:"severity"`
	Threshold *float64 `json:"threshold,omitempty" toml:"threshold"`
}

// Config is the fully resolved configuration a rule check consumes. It is
// built once per analysis run by the config resolver and is read-only from
// the rules' point of view; checks assume it is already validated.
type Config struct {
	Rules    map[string]RuleConfig `json:"rules,omitempty"`
	Viewport Viewport              `json:"viewport"`
}

// DefaultConfig returns a config with no per-rule overrides and the
// default viewport.
func DefaultConfig() *Config {
	return &Config{Viewport: DefaultViewport()}
}

// Enabled reports whether the named rule should run. Rules are enabled
// unless explicitly disabled.
func (c *Config) Enabled(name string) bool {
	if c == nil {
		return true
	}
	if rc, ok := c.Rules[name]; ok && rc.Enabled != nil {
		return *rc.Enabled
	}
	return true
}

// SeverityFor returns the configured severity for the named rule, falling
// back to the given default.
func (c *Config) SeverityFor(name string, def Severity) Severity {
	if c != nil {
		if rc, ok := c.Rules[name]; ok && rc.Severity != "" {
			return rc.Severity
		}
	}
	return def
}

// ThresholdFor returns the configured threshold for the named rule,
// falling back to the given default.
func (c *Config) ThresholdFor(name string, def float64) float64 {
	if c != nil {
		if rc, ok := c.Rules[name]; ok && rc.Threshold != nil {
			return *rc.Threshold
		}
	}
	return def
}

// ViewportOrDefault returns the resolved viewport, or the default when the
// config carries none.
func (c *Config) ViewportOrDefault() Viewport {
	if c == nil || !c.Viewport.Width.Valid() {
		return DefaultViewport()
	}
	return c.Viewport
}
