package challenge

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"gopkg.in/yaml.v3"
)

//go:embed challenges.yaml
var seed []byte

var (
	// ErrChallengeNotFound is returned when no challenge has the requested id.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrInvalidCatalog is returned when catalog data fails to load.
	ErrInvalidCatalog = errors.New("invalid challenge catalog")
)

type catalogFile struct {
	Challenges []challengeEntry `yaml:"challenges" validate:"required,min=1,dive"`
}

type challengeEntry struct {
	ID           string             `yaml:"id" validate:"required"`
	Title        string             `yaml:"title" validate:"required"`
	Description  string             `yaml:"description" validate:"required"`
	Target       string             `yaml:"target" validate:"required"`
	Difficulty   string             `yaml:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Inputs       []string           `yaml:"inputs" validate:"required,min=1,max=3,unique,dive,oneof=A B C"`
	NotInput     string             `yaml:"not_input" validate:"omitempty,oneof=A B C"`
	Scoring      string             `yaml:"scoring" validate:"required,oneof=last_gate kind_pattern"`
	Requirements []requirementEntry `yaml:"requirements" validate:"dive"`
	Fallback     string             `yaml:"fallback"`
}

type requirementEntry struct {
	Kind    logic.Kind `yaml:"kind"`
	Message string     `yaml:"message" validate:"required"`
}

var validate = validator.New()

// Catalog is the read-only set of challenges.
type Catalog struct {
	order []string
	byID  map[string]domain.Challenge
}

// DefaultCatalog loads the embedded challenges.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(seed)
}

// LoadCatalog parses and validates catalog YAML. Every challenge must have
// a unique id and a target expression with a known boolean function.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	cat := &Catalog{
		order: make([]string, 0, len(file.Challenges)),
		byID:  make(map[string]domain.Challenge, len(file.Challenges)),
	}
	for _, entry := range file.Challenges {
		if _, dup := cat.byID[entry.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate challenge id %q", ErrInvalidCatalog, entry.ID)
		}
		if _, ok := LookupTarget(entry.Target); !ok {
			return nil, fmt.Errorf("%w: challenge %q has unsupported target %q", ErrInvalidCatalog, entry.ID, entry.Target)
		}
		ch := entry.toDomain()
		if !declares(ch.Inputs, ch.NotInput) {
			return nil, fmt.Errorf("%w: challenge %q reads NOT from undeclared input %q", ErrInvalidCatalog, entry.ID, ch.NotInput)
		}
		cat.order = append(cat.order, ch.ID)
		cat.byID[ch.ID] = ch
	}
	return cat, nil
}

// List returns the challenges in catalog order.
func (c *Catalog) List() []domain.Challenge {
	out := make([]domain.Challenge, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get returns the challenge with id.
func (c *Catalog) Get(id string) (domain.Challenge, error) {
	ch, ok := c.byID[id]
	if !ok {
		return domain.Challenge{}, fmt.Errorf("%w: %q", ErrChallengeNotFound, id)
	}
	return ch, nil
}

func (e challengeEntry) toDomain() domain.Challenge {
	inputs := make([]domain.InputName, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		inputs = append(inputs, domain.InputName(in))
	}
	notInput := domain.InputName(e.NotInput)
	if notInput == "" {
		notInput = domain.InputA
	}
	reqs := make([]domain.Requirement, 0, len(e.Requirements))
	for _, r := range e.Requirements {
		reqs = append(reqs, domain.Requirement{Kind: r.Kind, Message: r.Message})
	}
	return domain.Challenge{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Target:       e.Target,
		Difficulty:   domain.Difficulty(e.Difficulty),
		Inputs:       inputs,
		NotInput:     notInput,
		Scoring:      domain.Scoring(e.Scoring),
		Requirements: reqs,
		Fallback:     e.Fallback,
	}
}

func declares(inputs []domain.InputName, name domain.InputName) bool {
	for _, in := range inputs {
		if in == name {
			return true
		}
	}
	return false
}
