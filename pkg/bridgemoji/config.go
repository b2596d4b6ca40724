package bridgemoji

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tbb-tools/tbtools/pkg/logger"
	"golang.org/x/text/language"
)

var configLog = logger.New("bridgemoji:config")

//go:embed schemas/bridgemoji_config_schema.json
var configSchemaJSON []byte

const configSchemaURL = "https://github.com/tbb-tools/tbtools/bridgemoji_config_schema.json"

// ErrInvalidConfig is returned when a configuration file does not match the
// schema or names an unknown language.
var ErrInvalidConfig = errors.New("invalid bridgemoji configuration")

// Default locations, relative to the browser source root.
const (
	DefaultPanelDir      = "browser/components/torpreferences/content"
	DefaultSourceFile    = "connectionPane.js"
	DefaultAssetsDirName = "bridgemoji"
	DefaultOutputFile    = "bridgemoji-annotations.json"
)

// Config describes where the synchronizer reads and writes and which
// languages it extracts.
type Config struct {
	Languages         []string          `yaml:"languages"`
	Renames           map[string]string `yaml:"renames"`
	PanelDir          string            `yaml:"panel_dir"`
	SourceFile        string            `yaml:"source_file"`
	EmojiList         string            `yaml:"emoji_list"`
	AssetsDirName     string            `yaml:"assets_dir_name"`
	OutputFile        string            `yaml:"output_file"`
	ContinueOnMissing bool              `yaml:"continue_on_missing"`
	Workers           int               `yaml:"workers"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Languages:     slices.Clone(Languages),
		Renames:       maps.Clone(DefaultRenames),
		PanelDir:      DefaultPanelDir,
		SourceFile:    DefaultSourceFile,
		AssetsDirName: DefaultAssetsDirName,
		OutputFile:    DefaultOutputFile,
	}
}

// Paths are the resolved file locations for one run.
type Paths struct {
	PanelDir   string
	SourceFile string
	EmojiList  string
	AssetsDir  string
	OutputFile string
}

// Resolve joins the configured locations onto root.
func (c Config) Resolve(root string) Paths {
	panel := filepath.Join(root, filepath.FromSlash(c.PanelDir))
	p := Paths{
		PanelDir:   panel,
		SourceFile: filepath.Join(panel, c.SourceFile),
		AssetsDir:  filepath.Join(panel, c.AssetsDirName),
		OutputFile: filepath.Join(panel, c.OutputFile),
	}
	if c.EmojiList != "" {
		p.EmojiList = filepath.FromSlash(c.EmojiList)
		if !filepath.IsAbs(p.EmojiList) {
			p.EmojiList = filepath.Join(root, p.EmojiList)
		}
	}
	return p
}

// Source returns the emoji list source selected by p.
func (p Paths) Source() EmojiListSource {
	if p.EmojiList != "" {
		return JSONListSource{Path: p.EmojiList}
	}
	return PaneScriptSource{Path: p.SourceFile}
}

// LoadConfig reads a YAML configuration file. Keys that are not present keep
// their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	configLog.Printf("Loading config from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig validates data against the configuration schema and decodes it
// over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		configLog.Print("Empty config, using defaults")
		return cfg, nil
	}

	if err := validateConfigSchema(data); err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := validateLanguages(cfg.Languages); err != nil {
		return Config{}, err
	}

	configLog.Printf("Loaded config: %d languages, workers=%d, continue_on_missing=%v",
		len(cfg.Languages), cfg.Workers, cfg.ContinueOnMissing)
	return cfg, nil
}

var (
	configSchema     *jsonschema.Schema
	configSchemaErr  error
	configSchemaOnce sync.Once
)

func compiledConfigSchema() (*jsonschema.Schema, error) {
	configSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configSchemaJSON))
		if err != nil {
			configSchemaErr = fmt.Errorf("failed to parse config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(configSchemaURL, doc); err != nil {
			configSchemaErr = fmt.Errorf("failed to add config schema: %w", err)
			return
		}
		configSchema, configSchemaErr = c.Compile(configSchemaURL)
	})
	return configSchema, configSchemaErr
}

func validateConfigSchema(data []byte) error {
	schema, err := compiledConfigSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := schema.Validate(instance); err != nil {
		configLog.Printf("Schema validation failed: %v", err)
		return newConfigError(data, err)
	}
	return nil
}

// validateLanguages checks that each CLDR locale name is a well-formed BCP 47
// tag once "_" separators are replaced.
func validateLanguages(langs []string) error {
	var bad []string
	for _, l := range langs {
		if _, err := language.Parse(strings.ReplaceAll(l, "_", "-")); err != nil {
			configLog.Printf("Rejecting language %q: %v", l, err)
			bad = append(bad, l)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: unknown language(s): %s", ErrInvalidConfig, strings.Join(bad, ", "))
	}
	return nil
}
