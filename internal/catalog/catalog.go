// Package catalog loads ad node definitions from YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/adboard"
)

//go:embed ads.yaml
var defaultYAML []byte

// Catalog is the on-disk list of ads.
type Catalog struct {
	Ads []Ad `yaml:"ads"`
}

// Ad is one catalog entry.
type Ad struct {
	ID      string  `yaml:"id"`
	Color   string  `yaml:"color"`
	Video   string  `yaml:"video"`
	Metrics Metrics `yaml:"metrics"`
}

// Metrics are the ad's performance percentages.
type Metrics struct {
	CTR      float64 `yaml:"ctr"`
	HookRate float64 `yaml:"hook_rate"`
	HoldRate float64 `yaml:"hold_rate"`
}

// Default returns the built-in ten-ad catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic("catalog: built-in ads are invalid: " + err.Error())
	}
	return c
}

// Load reads and validates the catalog at path. An empty path returns the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every invalid entry at once.
func (c *Catalog) Validate() error {
	if len(c.Ads) == 0 {
		return errors.New("catalog: no ads")
	}
	var errs []error
	seen := make(map[string]int, len(c.Ads))
	for i, ad := range c.Ads {
		where := fmt.Sprintf("ad %d", i)
		if ad.ID != "" {
			where = fmt.Sprintf("ad %d (%s)", i, ad.ID)
		}
		if strings.TrimSpace(ad.ID) == "" {
			errs = append(errs, fmt.Errorf("%s: missing id", where))
		} else if j, dup := seen[ad.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id, first used by ad %d", where, j))
		} else {
			seen[ad.ID] = i
		}
		if _, err := adboard.ParseHexColor(ad.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
		for _, m := range []struct {
			name string
			v    float64
		}{
			{"ctr", ad.Metrics.CTR},
			{"hook_rate", ad.Metrics.HookRate},
			{"hold_rate", ad.Metrics.HoldRate},
		} {
			if m.v < 0 || m.v > 100 || math.IsNaN(m.v) {
				errs = append(errs, fmt.Errorf("%s: %s %v outside [0, 100]", where, m.name, m.v))
			}
		}
	}
	return errors.Join(errs...)
}

// Defs converts the catalog into board node definitions, in catalog order.
// The catalog must be valid.
func (c *Catalog) Defs() []adboard.NodeDef {
	defs := make([]adboard.NodeDef, len(c.Ads))
	for i, ad := range c.Ads {
		defs[i] = adboard.NodeDef{
			ID:       ad.ID,
			Color:    adboard.MustParseHexColor(ad.Color),
			VideoRef: ad.Video,
			Metrics: adboard.Metrics{
				CTR:      ad.Metrics.CTR,
				HookRate: ad.Metrics.HookRate,
				HoldRate: ad.Metrics.HoldRate,
			},
		}
	}
	return defs
}

// Marshal encodes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
