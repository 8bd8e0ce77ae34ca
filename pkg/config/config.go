// Package config holds the options of a webgraph session and loads them
// from TOML or YAML files.
//
// Files are decoded over [Default], so a file only needs the keys it
// changes:
//
//	app_mode = "dynamic"
//	enable_history = true
//
//	[render]
//	hide_edges = true
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/webgraph/pkg/errors"
	"github.com/matzehuels/webgraph/pkg/labels"
	"github.com/matzehuels/webgraph/pkg/render"
)

// AppMode selects whether the pointer may move nodes.
type AppMode string

// Application modes.
const (
	AppModeStatic  AppMode = "static"
	AppModeDynamic AppMode = "dynamic"
)

// ParseAppMode parses an application mode, case-insensitively.
func ParseAppMode(s string) (AppMode, error) {
	switch m := AppMode(strings.ToLower(strings.TrimSpace(s))); m {
	case AppModeStatic, AppModeDynamic:
		return m, nil
	}
	return "", fmt.Errorf("unknown app mode %q", s)
}

// DefaultHighlightColor is the color of hovered subgraphs.
const DefaultHighlightColor = "#fc9044"

// Config is the full set of session options.
type Config struct {
	AppMode         AppMode         `toml:"app_mode" yaml:"app_mode" json:"app_mode"`
	DefaultNodeType render.NodeType `toml:"default_node_type" yaml:"default_node_type" json:"default_node_type"`
	LabelSelector   labels.Kind     `toml:"label_selector" yaml:"label_selector" json:"label_selector"`
	DisableHover    bool            `toml:"disable_hover" yaml:"disable_hover" json:"disable_hover"`

	EnableHistory bool `toml:"enable_history" yaml:"enable_history" json:"enable_history"`
	// HistoryLimit bounds the undo log. Zero keeps every action.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit" json:"history_limit"`

	HighlightSubGraphOnHover        bool   `toml:"highlight_subgraph_on_hover" yaml:"highlight_subgraph_on_hover" json:"highlight_subgraph_on_hover"`
	SubGraphHighlightColor          string `toml:"subgraph_highlight_color" yaml:"subgraph_highlight_color" json:"subgraph_highlight_color"`
	IncludeImportantNeighbors       bool   `toml:"include_important_neighbors" yaml:"include_important_neighbors" json:"include_important_neighbors"`
	ImportantNeighborsBidirectional bool   `toml:"important_neighbors_bidirectional" yaml:"important_neighbors_bidirectional" json:"important_neighbors_bidirectional"`
	// ImportantNeighborsColor colors second-hop members. Empty falls back
	// to SubGraphHighlightColor.
	ImportantNeighborsColor string `toml:"important_neighbors_color" yaml:"important_neighbors_color" json:"important_neighbors_color"`

	Render Render `toml:"render" yaml:"render" json:"render"`
}

// Render holds the options passed through to the renderer.
type Render struct {
	HideEdges                bool `toml:"hide_edges" yaml:"hide_edges" json:"hide_edges"`
	RenderJustImportantEdges bool `toml:"render_just_important_edges" yaml:"render_just_important_edges" json:"render_just_important_edges"`
	RenderNodeBackdrop       bool `toml:"render_node_backdrop" yaml:"render_node_backdrop" json:"render_node_backdrop"`

	// ClusterColors maps a node category, written as a decimal string, to
	// its backdrop color.
	ClusterColors map[string]string `toml:"cluster_colors" yaml:"cluster_colors" json:"cluster_colors"`

	// AnimationMillis is the duration of layout transitions. Zero applies
	// layouts at once.
	AnimationMillis int `toml:"animation_millis" yaml:"animation_millis" json:"animation_millis"`

	LabelRenderedSizeThreshold float64 `toml:"label_rendered_size_threshold" yaml:"label_rendered_size_threshold" json:"label_rendered_size_threshold"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		AppMode:                  AppModeStatic,
		DefaultNodeType:          render.NodeRing,
		LabelSelector:            labels.KindLevels,
		HighlightSubGraphOnHover: true,
		SubGraphHighlightColor:   DefaultHighlightColor,
		Render: Render{
			AnimationMillis:            1000,
			LabelRenderedSizeThreshold: render.DefaultLabelRenderedSizeThreshold,
		},
	}
}

// Load reads path and decodes it over [Default]. The format follows the
// file extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	format, err := errors.ValidateConfigPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data, format)
}

// Parse decodes data in the given format ("toml" or "yaml") over [Default]
// and validates the result.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize lowercases enumerations so "Dynamic" and "dynamic" agree.
func (c *Config) normalize() {
	c.AppMode = AppMode(strings.ToLower(strings.TrimSpace(string(c.AppMode))))
	c.DefaultNodeType = render.NodeType(strings.ToLower(strings.TrimSpace(string(c.DefaultNodeType))))
	c.LabelSelector = labels.Kind(strings.ToLower(strings.TrimSpace(string(c.LabelSelector))))
}

// Validate checks enumerations, colors and numeric ranges.
func (c Config) Validate() error {
	if _, err := ParseAppMode(string(c.AppMode)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "app_mode")
	}
	if _, err := render.ParseNodeType(string(c.DefaultNodeType)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "default_node_type")
	}
	if _, err := labels.ParseKind(string(c.LabelSelector)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "label_selector")
	}
	if c.HistoryLimit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "history_limit must be >= 0, got %d", c.HistoryLimit)
	}
	if err := errors.ValidateColor(c.SubGraphHighlightColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "subgraph_highlight_color")
	}
	if c.ImportantNeighborsColor != "" {
		if err := errors.ValidateColor(c.ImportantNeighborsColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "important_neighbors_color")
		}
	}
	return c.Render.validate()
}

func (r Render) validate() error {
	if r.AnimationMillis < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.animation_millis must be >= 0, got %d", r.AnimationMillis)
	}
	if r.LabelRenderedSizeThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.label_rendered_size_threshold must be >= 0")
	}
	for k, color := range r.ClusterColors {
		if _, err := strconv.Atoi(k); err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "render.cluster_colors: category %q is not an integer", k)
		}
		if err := errors.ValidateColor(color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.cluster_colors[%s]", k)
		}
	}
	return nil
}

// AnimationDuration returns the layout transition length.
func (r Render) AnimationDuration() time.Duration {
	return time.Duration(r.AnimationMillis) * time.Millisecond
}

// Clusters returns ClusterColors keyed by category. Keys that are not
// integers are dropped.
func (r Render) Clusters() map[int]string {
	if len(r.ClusterColors) == 0 {
		return nil
	}
	out := make(map[int]string, len(r.ClusterColors))
	for k, color := range r.ClusterColors {
		if n, err := strconv.Atoi(k); err == nil {
			out[n] = color
		}
	}
	return out
}

// SecondHopColor returns the color of second-hop highlight members.
func (c Config) SecondHopColor() string {
	if c.ImportantNeighborsColor != "" {
		return c.ImportantNeighborsColor
	}
	return c.SubGraphHighlightColor
}
