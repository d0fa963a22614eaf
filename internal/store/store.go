// Package store provides loading of deployment-specific extraction rules.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AddressField names the trip record field an anchor rule feeds.
type AddressField string

const (
	FieldStartAddress AddressField = "start_address"
	FieldEndAddress   AddressField = "end_address"
)

// AnchorRule maps a literal anchor substring to an address field. When a line
// of recognized text contains the anchor, the line from the anchor onward is
// captured as that field's value. Anchors are deployment specific (a driver's
// regular pickup and dropoff streets) and are configured, never hard-coded.
type AnchorRule struct {
	Match string       `yaml:"match"`
	Field AddressField `yaml:"field"`
}

// anchorFile is the YAML document shape of the rules file.
type anchorFile struct {
	Anchors []AnchorRule `yaml:"anchors"`
}

// AnchorStore loads anchor rules from a YAML file.
type AnchorStore struct {
	RulesFile string
}

// NewAnchorStore creates a store reading from the given rules file path.
func NewAnchorStore(rulesFile string) *AnchorStore {
	return &AnchorStore{RulesFile: rulesFile}
}

// FindConfigFile looks for a rules file in standard locations: the path as
// given, ./config/, and ~/.config/trip-audit/.
func (s *AnchorStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "trip-audit", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads and validates the anchor rules. A missing file is not an error:
// it yields no rules, and every address field parses as unknown.
func (s *AnchorStore) Load() ([]AnchorRule, error) {
	if s.RulesFile == "" {
		return nil, nil
	}

	path, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading anchor rules file: %w", err)
	}

	var doc anchorFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing anchor rules file: %w", err)
	}

	for i, rule := range doc.Anchors {
		if rule.Match == "" {
			return nil, fmt.Errorf("anchor rule %d: match must not be empty", i)
		}
		if rule.Field != FieldStartAddress && rule.Field != FieldEndAddress {
			return nil, fmt.Errorf("anchor rule %d: unknown field %q", i, rule.Field)
		}
	}
	return doc.Anchors, nil
}

// Save writes anchor rules back to the rules file, creating parent
// directories as needed.
func (s *AnchorStore) Save(rules []AnchorRule) error {
	if s.RulesFile == "" {
		return fmt.Errorf("no rules file configured")
	}

	data, err := yaml.Marshal(anchorFile{Anchors: rules})
	if err != nil {
		return fmt.Errorf("error serializing anchor rules: %w", err)
	}

	if dir := filepath.Dir(s.RulesFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating rules directory: %w", err)
		}
	}
	return os.WriteFile(s.RulesFile, data, 0644)
}
