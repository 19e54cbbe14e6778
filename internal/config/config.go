package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rkstep/internal/tableau"
)

const (
	DefaultH      = 0.1
	DefaultSteps  = 10
	DefaultMethod = "rk4"
	DefaultEngine = "specialized"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Method  string       `yaml:"method"`
	Tableau *TableauSpec `yaml:"tableau,omitempty"`
	Problem string       `yaml:"problem"`
	Engine  string       `yaml:"engine"`
	H       float64      `yaml:"h"`
	Steps   int          `yaml:"steps"`
	// X0 and Y0 override the problem's initial point when set.
	X0 *float64 `yaml:"x0,omitempty"`
	Y0 *float64 `yaml:"y0,omitempty"`
}

// TableauSpec is an inline Butcher tableau. A holds the N-1 rows of the
// strictly lower-triangular coupling matrix, row i having i+1 entries.
type TableauSpec struct {
	Name string      `yaml:"name"`
	B    []float64   `yaml:"b"`
	C    []float64   `yaml:"c"`
	A    [][]float64 `yaml:"a"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:  DefaultMethod,
		Problem: "exp",
		Engine:  DefaultEngine,
		H:       DefaultH,
		Steps:   DefaultSteps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Method == "" && c.Tableau == nil {
		return fmt.Errorf("%w: method or tableau required", ErrInvalid)
	}
	switch c.Engine {
	case "generic", "specialized":
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalid, c.Engine)
	}
	if c.H <= 0 {
		return fmt.Errorf("%w: h must be positive, got %g", ErrInvalid, c.H)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalid, c.Steps)
	}
	return nil
}

// BuildTableau returns the inline tableau when one is set, otherwise the
// catalogue method named by Method.
func (c *Config) BuildTableau() (*tableau.Tableau[float64], error) {
	if c.Tableau == nil {
		return tableau.Lookup(c.Method)
	}
	tab, err := tableau.New(c.Tableau.B, c.Tableau.C, c.Tableau.A...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	name := c.Tableau.Name
	if name == "" {
		name = "custom"
	}
	return tab.WithName(name), nil
}

// MethodName is the label runs are stored and reported under.
func (c *Config) MethodName() string {
	if c.Tableau != nil {
		if c.Tableau.Name != "" {
			return c.Tableau.Name
		}
		return "custom"
	}
	return c.Method
}

// Initial resolves the starting point, preferring explicit overrides.
func (c *Config) Initial(x0, y0 float64) (float64, float64) {
	if c.X0 != nil {
		x0 = *c.X0
	}
	if c.Y0 != nil {
		y0 = *c.Y0
	}
	return x0, y0
}
