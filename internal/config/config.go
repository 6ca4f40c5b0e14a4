// Package config loads profile variants from built-in presets and YAML files.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	gojson "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/profilecard/internal/profile"
)

//go:embed variant.schema.json
var schemaJSON []byte

const schemaURL = "schema://profilecard/variant.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Options selects where the variant comes from. Path wins over Variant.
type Options struct {
	Path    string
	Variant string
}

// OptionsFromEnv reads PROFILECARD_CONFIG and PROFILECARD_VARIANT.
func OptionsFromEnv() Options {
	return Options{
		Path:    os.Getenv("PROFILECARD_CONFIG"),
		Variant: os.Getenv("PROFILECARD_VARIANT"),
	}
}

// Resolve returns the effective variant config.
func Resolve(opts Options) (profile.Config, error) {
	if opts.Path != "" {
		return LoadFile(opts.Path)
	}
	cfg, err := profile.Preset(opts.Variant)
	if err != nil {
		return profile.Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML (or JSON) variant file.
func LoadFile(path string) (profile.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profile.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return profile.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// fileConfig is the on-disk shape: an optional base preset plus overrides.
type fileConfig struct {
	Base           string `yaml:"base"`
	profile.Config `yaml:",inline"`
}

// Parse validates data against the variant schema, applies it on top of
// its base preset and checks the result for consistency.
func Parse(data []byte) (profile.Config, error) {
	if err := validateDocument(data); err != nil {
		return profile.Config{}, err
	}

	var probe struct {
		Base            string    `yaml:"base"`
		InterestCatalog *[]string `yaml:"interest_catalog"`
		InterestPool    *[]string `yaml:"interest_pool"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return profile.Config{}, fmt.Errorf("parse config: %w", err)
	}

	base, err := profile.Preset(probe.Base)
	if err != nil {
		return profile.Config{}, err
	}

	fc := fileConfig{Config: base}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return profile.Config{}, fmt.Errorf("parse config: %w", err)
	}

	// A new catalog without an explicit pool means "sample from the catalog".
	if probe.InterestCatalog != nil && probe.InterestPool == nil {
		fc.InterestPool = nil
	}

	if err := fc.Config.Validate(); err != nil {
		return profile.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return fc.Config, nil
}

// validateDocument converts the YAML document to JSON and checks it
// against the embedded schema.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	asJSON, err := gojson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert config to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return fmt.Errorf("convert config to JSON: %w", err)
	}

	sch, err := variantSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}

func variantSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse variant schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add variant schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Schema returns the JSON schema for variant files, indented.
func Schema() ([]byte, error) {
	var v any
	if err := gojson.Unmarshal(schemaJSON, &v); err != nil {
		return nil, err
	}
	return gojson.MarshalIndent(v, "", "  ")
}

// Marshal renders cfg as a YAML variant file.
func Marshal(cfg profile.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
