// Package content holds the static copy of the association site.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//go:embed content.yaml
var embedded []byte

type NavLink struct {
	Label  string `yaml:"label" json:"label"`
	Target string `yaml:"target" json:"target"`
}

type Highlight struct {
	Kicker string `yaml:"kicker" json:"kicker"`
	Title  string `yaml:"title" json:"title"`
	Text   string `yaml:"text" json:"text"`
	Target string `yaml:"target" json:"target"`
}

type Hero struct {
	Kicker    string    `yaml:"kicker" json:"kicker"`
	Text      string    `yaml:"text" json:"text"`
	Highlight Highlight `yaml:"highlight" json:"highlight"`
}

type About struct {
	Text    string   `yaml:"text" json:"text"`
	Bullets []string `yaml:"bullets" json:"bullets"`
}

type Initiative struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Event struct {
	Title       string `yaml:"title" json:"title"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
}

type SupportAction struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

type Contact struct {
	Intro            string `yaml:"intro" json:"intro"`
	Email            string `yaml:"email" json:"email"`
	Instagram        string `yaml:"instagram" json:"instagram"`
	Telegram         string `yaml:"telegram" json:"telegram"`
	PartnershipEmail string `yaml:"partnershipEmail" json:"partnershipEmail"`
}

// Site is everything the marketing page shows. It is immutable once loaded.
type Site struct {
	Nav            []NavLink       `yaml:"nav" json:"nav"`
	Hero           Hero            `yaml:"hero" json:"hero"`
	About          About           `yaml:"about" json:"about"`
	Initiatives    []Initiative    `yaml:"initiatives" json:"initiatives"`
	Events         []Event         `yaml:"events" json:"events"`
	SupportActions []SupportAction `yaml:"supportActions" json:"supportActions"`
	Contact        Contact         `yaml:"contact" json:"contact"`
	Footer         []NavLink       `yaml:"footer" json:"footer"`
}

// Load parses the content compiled into the binary.
func Load() (*Site, error) {
	return Parse(embedded)
}

// LoadFile parses content from disk, or the embedded copy when path is empty.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Load()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading content file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Site, error) {
	var site Site
	if err := yaml.UnmarshalStrict(raw, &site); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content YAML: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks that every item is titled and that nav anchors are unique.
func (s *Site) Validate() error {
	var errs []error

	seen := make(map[string]bool)
	for _, l := range s.Nav {
		if l.Label == "" || l.Target == "" {
			errs = append(errs, fmt.Errorf("nav link %q needs a label and a target", l.Label))
			continue
		}
		if seen[l.Target] {
			errs = append(errs, fmt.Errorf("duplicate nav target %q", l.Target))
		}
		seen[l.Target] = true
	}
	for i, it := range s.Initiatives {
		if it.Title == "" {
			errs = append(errs, fmt.Errorf("initiative %d has no title", i))
		}
	}
	for i, ev := range s.Events {
		if ev.Title == "" {
			errs = append(errs, fmt.Errorf("event %d has no title", i))
		}
	}
	for i, sa := range s.SupportActions {
		if sa.Title == "" {
			errs = append(errs, fmt.Errorf("support action %d has no title", i))
		}
	}

	return errors.Join(errs...)
}
