package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/semtheme/internal/component"
)

// Config represents a semtheme configuration document.
type Config struct {
	Version string `yaml:"version,omitempty" toml:"version" validate:"omitempty,semver"`
	// Backend names the target format used when none is given on the command line.
	Backend    string     `yaml:"backend,omitempty" toml:"backend" validate:"omitempty,backend_name"`
	Prefix     string     `yaml:"prefix,omitempty" toml:"prefix" validate:"omitempty,css_prefix"`
	Components Components `yaml:"components,omitempty" toml:"components"`
}

// Components holds per-namespace class overrides keyed by class label.
type Components struct {
	Container map[string]Override `yaml:"container,omitempty" toml:"container" validate:"omitempty,dive,keys,class_name,endkeys"`
	Inline    map[string]Override `yaml:"inline,omitempty" toml:"inline" validate:"omitempty,dive,keys,class_name,endkeys"`
}

// Override replaces the built-in configuration of one class.
type Override struct {
	Function string `yaml:"function" toml:"function" validate:"required,function_name"`
	PassArgs bool   `yaml:"pass_args,omitempty" toml:"pass_args"`
}

// UnmarshalYAML accepts either a bare function name or a mapping. The
// argument flag may be spelt pass_args or pass-args.
func (o *Override) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*o = Override{}
		return value.Decode(&o.Function)
	}

	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return o.fromMap(raw)
}

// UnmarshalTOML mirrors UnmarshalYAML for TOML documents.
func (o *Override) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*o = Override{Function: v}
		return nil
	case map[string]any:
		return o.fromMap(v)
	}
	return fmt.Errorf("component override must be a string or table, got %T", data)
}

func (o *Override) fromMap(raw map[string]any) error {
	*o = Override{}
	if fn, ok := raw["function"]; ok {
		s, ok := fn.(string)
		if !ok {
			return fmt.Errorf("function must be a string, got %T", fn)
		}
		o.Function = strings.TrimSpace(s)
	}

	for _, key := range []string{"pass_args", "pass-args"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		pass, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.PassArgs = pass
	}
	return nil
}

func parseBool(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(b))
	}
	return false, fmt.Errorf("expected a boolean, got %T", v)
}

// Table converts the overrides into a mapping layer.
func (c *Config) Table() component.Table {
	t := component.Table{
		Container: map[string]component.ComponentConfig{},
		Inline:    map[string]component.ComponentConfig{},
	}
	if c == nil {
		return t
	}
	for class, o := range c.Components.Container {
		t.Container[class] = component.ComponentConfig{Function: o.Function, PassArgs: o.PassArgs}
	}
	for class, o := range c.Components.Inline {
		t.Inline[class] = component.ComponentConfig{Function: o.Function, PassArgs: o.PassArgs}
	}
	return t
}

// Merge returns a new configuration where set fields of over replace those of
// base. Component overrides merge key by key.
func Merge(base, over *Config) *Config {
	out := &Config{}
	for _, c := range []*Config{base, over} {
		if c == nil {
			continue
		}
		if c.Version != "" {
			out.Version = c.Version
		}
		if c.Backend != "" {
			out.Backend = c.Backend
		}
		if c.Prefix != "" {
			out.Prefix = c.Prefix
		}
		out.Components.Container = mergeOverrides(out.Components.Container, c.Components.Container)
		out.Components.Inline = mergeOverrides(out.Components.Inline, c.Components.Inline)
	}
	return out
}

func mergeOverrides(dst, src map[string]Override) map[string]Override {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]Override, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
