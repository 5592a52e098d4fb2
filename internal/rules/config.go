package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrConfigParse reports that a configuration document failed to
// decode.
type ErrConfigParse struct {
	Err error
}

func (e ErrConfigParse) Error() string { return fmt.Sprintf("rules: config parse: %v", e.Err) }
func (e ErrConfigParse) Unwrap() error { return e.Err }

// document mirrors the external configuration schema:
//
//	config:
//	  matching:
//	    rules: [ <rule>, … ]
//	    priorities: [ <rule-name>, … ]
type document struct {
	Config struct {
		Matching struct {
			Rules      []Rule   `yaml:"rules"`
			Priorities []string `yaml:"priorities"`
		} `yaml:"matching"`
	} `yaml:"config"`
}

// ParseConfig decodes raw as the matching configuration document. A
// YAML document decodes JSON too, since JSON is a subset of YAML, so
// this single path serves both of the external schema's accepted
// formats.
//
// Missing rules or priorities each independently fall back to their
// documented defaults.
func ParseConfig(raw []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, ErrConfigParse{Err: err}
	}

	configuredRules := doc.Config.Matching.Rules
	if len(configuredRules) == 0 {
		configuredRules = DefaultRules()
	}
	priorities := doc.Config.Matching.Priorities
	if len(priorities) == 0 {
		priorities = DefaultPriorities()
	}
	return NewSet(configuredRules, priorities), nil
}
