package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/geoproc"
	"gopkg.in/yaml.v3"
)

// Config is a YAML draw description.
//
//	label: sprites
//	space: world            # world | device
//	view: [2, 0, 10, 0, 2, 20]
//	color:
//	  kind: straight        # uniform | premul | straight
//	  src: srgb
//	  dst: linear
//	coverage:
//	  kind: attribute       # solid | uniform | attribute
//	local_coords:
//	  kind: position        # unused | position | explicit | transformed
//	  matrix: [0.5, 0, 0, 0, 0.5, 0]
//	bones:
//	  - [1, 0, 0, 1, 0, 0]
type Config struct {
	Label       string            `yaml:"label"`
	Space       string            `yaml:"space"`
	View        []float64         `yaml:"view"`
	Color       ColorConfig       `yaml:"color"`
	Coverage    CoverageConfig    `yaml:"coverage"`
	LocalCoords LocalCoordsConfig `yaml:"local_coords"`
	Bones       [][]float32       `yaml:"bones"`
	Caps        *CapsConfig       `yaml:"caps"`
}

// ColorConfig selects the color option.
type ColorConfig struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
	Src   string `yaml:"src"`
	Dst   string `yaml:"dst"`
}

// CoverageConfig selects the coverage option.
type CoverageConfig struct {
	Kind  string `yaml:"kind"`
	Value uint8  `yaml:"value"`
}

// LocalCoordsConfig selects the local-coordinates option.
type LocalCoordsConfig struct {
	Kind   string    `yaml:"kind"`
	Matrix []float64 `yaml:"matrix"`
}

// CapsConfig overrides device capabilities. Omitted limits are unlimited.
type CapsConfig struct {
	MaxVertexAttributes          int  `yaml:"max_vertex_attributes"`
	MaxVertexStride              int  `yaml:"max_vertex_stride"`
	MaxInterStageComponents      int  `yaml:"max_inter_stage_components"`
	MaxBones                     int  `yaml:"max_bones"`
	PerspectiveOnlyInterpolation bool `yaml:"perspective_only_interpolation"`
}

var errConfig = errors.New("gpdump: invalid config")

// parseConfig decodes a YAML draw description. Unknown keys are errors.
func parseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errConfig, err)
	}
	return cfg, nil
}

// Build resolves the description into a geometry processor.
func (c Config) Build(opts ...geoproc.Option) (*geoproc.GeometryProcessor, error) {
	view, err := parseMatrix(c.View)
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	color, err := c.Color.option()
	if err != nil {
		return nil, err
	}
	coverage, err := c.Coverage.option()
	if err != nil {
		return nil, err
	}
	local, err := c.LocalCoords.option()
	if err != nil {
		return nil, err
	}
	caps := geoproc.DefaultCaps()
	if c.Caps != nil {
		caps = geoproc.Caps(*c.Caps)
	}
	if c.Label != "" {
		opts = append(opts, geoproc.WithLabel(c.Label))
	}

	switch strings.ToLower(c.Space) {
	case "", "world":
	case "device":
		if len(c.Bones) > 0 {
			return nil, fmt.Errorf("%w: bones need world space", errConfig)
		}
		return geoproc.BuildForDeviceSpace(caps, color, coverage, local, view, opts...)
	default:
		return nil, fmt.Errorf("%w: space %q", errConfig, c.Space)
	}

	if len(c.Bones) == 0 {
		return geoproc.Build(caps, color, coverage, local, view, opts...)
	}
	flat := make([]float32, 0, len(c.Bones)*6)
	for i, b := range c.Bones {
		if len(b) != 6 {
			return nil, fmt.Errorf("%w: bone %d has %d values, want 6", errConfig, i, len(b))
		}
		flat = append(flat, b...)
	}
	bones, err := geoproc.NewBonesFromFloats(flat, len(c.Bones))
	if err != nil {
		return nil, err
	}
	return geoproc.BuildWithBones(caps, color, coverage, local, bones, view, opts...)
}

func (c ColorConfig) option() (geoproc.ColorOption, error) {
	switch strings.ToLower(c.Kind) {
	case "", "uniform":
		v := geoproc.Color(0xFFFFFFFF)
		if c.Value != "" {
			n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(c.Value), "0x"), 16, 32)
			if err != nil {
				return geoproc.ColorOption{}, fmt.Errorf("%w: color value %q", errConfig, c.Value)
			}
			v = geoproc.Color(n)
		}
		return geoproc.UniformColor(v), nil
	case "premul", "premultiplied":
		return geoproc.AttributeColorPremultiplied(), nil
	case "straight", "unpremul":
		var x geoproc.ColorSpaceXform
		if c.Src != "" || c.Dst != "" {
			src, err := parseColorSpace(c.Src)
			if err != nil {
				return geoproc.ColorOption{}, err
			}
			dst, err := parseColorSpace(c.Dst)
			if err != nil {
				return geoproc.ColorOption{}, err
			}
			x = geoproc.NewColorSpaceXform(src, dst)
		}
		return geoproc.AttributeColorStraight(x), nil
	default:
		return geoproc.ColorOption{}, fmt.Errorf("%w: color kind %q", errConfig, c.Kind)
	}
}

func parseColorSpace(s string) (geoproc.ColorSpace, error) {
	switch strings.ToLower(s) {
	case "", "srgb":
		return geoproc.ColorSpaceSRGB, nil
	case "linear":
		return geoproc.ColorSpaceLinear, nil
	default:
		return 0, fmt.Errorf("%w: color space %q", errConfig, s)
	}
}

func (c CoverageConfig) option() (geoproc.CoverageOption, error) {
	switch strings.ToLower(c.Kind) {
	case "", "solid":
		return geoproc.SolidCoverage(), nil
	case "uniform":
		return geoproc.UniformCoverage(c.Value), nil
	case "attribute":
		return geoproc.AttributeCoverage(), nil
	default:
		return geoproc.CoverageOption{}, fmt.Errorf("%w: coverage kind %q", errConfig, c.Kind)
	}
}

func (c LocalCoordsConfig) option() (geoproc.LocalCoordsOption, error) {
	kind := strings.ToLower(c.Kind)
	if c.Matrix != nil && kind != "position" && kind != "transformed" {
		return geoproc.LocalCoordsOption{}, fmt.Errorf("%w: local_coords %q takes no matrix", errConfig, c.Kind)
	}
	switch kind {
	case "", "unused":
		return geoproc.UnusedLocalCoords(), nil
	case "explicit":
		return geoproc.ExplicitLocalCoords(), nil
	case "position":
		if c.Matrix == nil {
			return geoproc.UsePositionLocalCoords(), nil
		}
		m, err := parseMatrix(c.Matrix)
		if err != nil {
			return geoproc.LocalCoordsOption{}, fmt.Errorf("local_coords: %w", err)
		}
		return geoproc.UsePositionLocalCoordsWithMatrix(&m)
	case "transformed":
		m, err := parseMatrix(c.Matrix)
		if err != nil {
			return geoproc.LocalCoordsOption{}, fmt.Errorf("local_coords: %w", err)
		}
		return geoproc.TransformedLocalCoords(&m)
	default:
		return geoproc.LocalCoordsOption{}, fmt.Errorf("%w: local_coords kind %q", errConfig, c.Kind)
	}
}

// parseMatrix accepts nothing (identity), six affine values (a, b, c, d,
// e, f) or nine row-major values.
func parseMatrix(v []float64) (geoproc.Matrix, error) {
	switch len(v) {
	case 0:
		return geoproc.Identity(), nil
	case 6:
		return geoproc.Affine(v[0], v[1], v[2], v[3], v[4], v[5]), nil
	case 9:
		return geoproc.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5], G: v[6], H: v[7], I: v[8]}, nil
	default:
		return geoproc.Matrix{}, fmt.Errorf("%w: matrix has %d values, want 6 or 9", errConfig, len(v))
	}
}

// parseFloats parses a comma-separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errConfig, p)
		}
		out[i] = f
	}
	return out, nil
}
