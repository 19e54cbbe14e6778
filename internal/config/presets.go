package config

import "sort"

func ptr(v float64) *float64 { return &v }

// Presets groups ready-made runs by problem.
var Presets = map[string]map[string]*Config{
	"exp": {
		"coarse": {
			Method: "heun", Problem: "exp", Engine: "specialized", H: 0.25, Steps: 4,
		},
		"fine": {
			Method: "rk4", Problem: "exp", Engine: "specialized", H: 0.01, Steps: 100,
		},
		"dead-stage": {
			Method: "euler2", Problem: "exp", Engine: "specialized", H: 0.1, Steps: 10,
		},
	},
	"decay": {
		"stiffish": {
			Method: "rk4", Problem: "decay", Engine: "specialized", H: 0.5, Steps: 10,
		},
		"dopri": {
			Method: "dopri5", Problem: "decay", Engine: "specialized", H: 0.1, Steps: 20,
		},
	},
	"logistic": {
		"saturate": {
			Method: "rk38", Problem: "logistic", Engine: "specialized", H: 0.2, Steps: 50,
		},
		"low-start": {
			Method: "kutta3", Problem: "logistic", Engine: "generic", H: 0.1, Steps: 100,
			Y0: ptr(0.01),
		},
	},
	"cosine": {
		"period": {
			Method: "rkf45", Problem: "cosine", Engine: "specialized", H: 0.1, Steps: 63,
		},
	},
	"poly": {
		"unit": {
			Method: "midpoint", Problem: "poly", Engine: "generic", H: 0.1, Steps: 10,
		},
		"heun-inline": {
			Tableau: &TableauSpec{
				Name: "heun-inline",
				B:    []float64{0.5, 0.5},
				C:    []float64{1},
				A:    [][]float64{{1}},
			},
			Problem: "poly", Engine: "specialized", H: 0.1, Steps: 10,
		},
	},
}

func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
