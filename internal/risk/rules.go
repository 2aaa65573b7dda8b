package risk

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclRulesFile is the top-level structure of a risk.hcl file.
//
//	weights {
//	  high   = 20
//	  breach = 30
//	}
//	thresholds {
//	  high = 80
//	}
//	category "medium" {
//	  platforms = ["amazon", "ebay"]
//	}
type hclRulesFile struct {
	Weights    *hclWeights         `hcl:"weights,block"`
	Thresholds *hclThresholds      `hcl:"thresholds,block"`
	Categories []*hclCategoryBlock `hcl:"category,block"`
}

type hclWeights struct {
	High         *int `hcl:"high,optional"`
	Medium       *int `hcl:"medium,optional"`
	Low          *int `hcl:"low,optional"`
	Breach       *int `hcl:"breach,optional"`
	BreachMany   *int `hcl:"breach_many,optional"`
	ManyBreaches *int `hcl:"many_breaches,optional"`
}

type hclThresholds struct {
	High   *int `hcl:"high,optional"`
	Medium *int `hcl:"medium,optional"`
}

type hclCategoryBlock struct {
	Name      string   `hcl:"name,label"`
	Platforms []string `hcl:"platforms"`
}

// LoadRulesFile reads rules from path. An empty path or a missing file yields DefaultRules.
func LoadRulesFile(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("read risk rules %s: %w", path, err)
	}
	return ParseRules(src, path)
}

// ParseRules decodes HCL source on top of DefaultRules. Omitted attributes
// keep their defaults; a category block replaces that category's list.
func ParseRules(src []byte, filename string) (*Rules, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse risk rules %s: %w", filename, diags)
	}

	var parsed hclRulesFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode risk rules %s: %w", filename, diags)
	}

	rules := DefaultRules()
	if w := parsed.Weights; w != nil {
		setInt(&rules.Weights.High, w.High)
		setInt(&rules.Weights.Medium, w.Medium)
		setInt(&rules.Weights.Low, w.Low)
		setInt(&rules.Weights.Breach, w.Breach)
		setInt(&rules.Weights.BreachMany, w.BreachMany)
		setInt(&rules.Weights.ManyBreaches, w.ManyBreaches)
	}
	if th := parsed.Thresholds; th != nil {
		setInt(&rules.Thresholds.High, th.High)
		setInt(&rules.Thresholds.Medium, th.Medium)
	}

	for _, c := range parsed.Categories {
		switch Normalize(c.Name) {
		case "high":
			rules.High = toSet(c.Platforms)
		case "medium":
			rules.Medium = toSet(c.Platforms)
		default:
			return nil, fmt.Errorf("risk rules %s: unknown category %q (want \"high\" or \"medium\")", filename, c.Name)
		}
	}

	if rules.Thresholds.Medium > rules.Thresholds.High {
		return nil, fmt.Errorf("risk rules %s: medium threshold %d exceeds high threshold %d", filename, rules.Thresholds.Medium, rules.Thresholds.High)
	}
	return rules, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
