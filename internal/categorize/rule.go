// Package categorize assigns categories to normalized transactions using an
// ordered rule set. Rules are process-wide read-only state with an explicit
// load/reload lifecycle; the ingestion path only ever reads them.
package categorize

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule fields select which transaction text a pattern is matched against.
const (
	FieldMerchant    = "merchant"
	FieldDescription = "description"
	FieldAny         = "any"
)

// regexPrefix marks a pattern as a regular expression instead of a
// case-insensitive substring.
const regexPrefix = "re:"

// Rule is one pattern-to-category mapping. Lower priority evaluates first;
// ties are broken by declaration order.
type Rule struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Category string `yaml:"category" json:"category"`
	Priority int    `yaml:"priority" json:"priority"`
	Field    string `yaml:"field,omitempty" json:"field,omitempty"` // merchant, description or any (default)
}

// ruleFile is the on-disk YAML shape
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// compiledRule is a rule made total: matching never fails at match time
// because regexes are compiled (and rejected) at load time.
type compiledRule struct {
	rule      Rule
	index     int            // declaration order, for stable tie-breaking
	substring string         // upper-cased pattern when not a regex
	re        *regexp.Regexp // non-nil for re: patterns
}

func (c compiledRule) matchText(text string) bool {
	if text == "" {
		return false
	}
	if c.re != nil {
		return c.re.MatchString(text)
	}
	return strings.Contains(strings.ToUpper(text), c.substring)
}

// compileRules validates and orders a rule list. A malformed regex or an
// empty pattern/category rejects the whole set, so a bad reload can never
// replace a working one.
func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if strings.TrimSpace(r.Pattern) == "" {
			return nil, fmt.Errorf("rule %d: pattern cannot be empty", i)
		}
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("rule %d: category cannot be empty", i)
		}
		switch r.Field {
		case "", FieldAny, FieldMerchant, FieldDescription:
		default:
			return nil, fmt.Errorf("rule %d: unknown field %q", i, r.Field)
		}

		cr := compiledRule{rule: r, index: i}
		if strings.HasPrefix(r.Pattern, regexPrefix) {
			re, err := regexp.Compile("(?i)" + strings.TrimPrefix(r.Pattern, regexPrefix))
			if err != nil {
				return nil, fmt.Errorf("rule %d: invalid regex %q: %w", i, r.Pattern, err)
			}
			cr.re = re
		} else {
			cr.substring = strings.ToUpper(r.Pattern)
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(a, b int) bool {
		if compiled[a].rule.Priority != compiled[b].rule.Priority {
			return compiled[a].rule.Priority < compiled[b].rule.Priority
		}
		return compiled[a].index < compiled[b].index
	})

	return compiled, nil
}

// LoadRuleFile reads and validates a YAML rule file.
func LoadRuleFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rule file %s contains no rules", path)
	}

	return rf.Rules, nil
}
