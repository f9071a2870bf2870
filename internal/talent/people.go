package talent

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type Candidates struct {
	Items []*Candidate
}

// Candidate is a single roster entry. Fields the dashboard does not use are
// kept untouched in Extra.
type Candidate struct {
	ID    string         `json:"id" mapstructure:"id"`
	Name  string         `json:"name" mapstructure:"name"`
	Extra map[string]any `json:"extra,omitempty" mapstructure:",remain"`
}

func (c *Client) getCandidates(ctx context.Context) (*Candidates, error) {
	apiURLPeople := fmt.Sprintf("%s%s", c.APIURL, peoplePath)

	var items []map[string]any
	if err := c.getJSON(ctx, EndpointRoster, apiURLPeople, &items); err != nil {
		return nil, err
	}

	candidates, err := DecodeCandidates(items)
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

// DecodeCandidates converts raw roster objects into candidates. Numeric ids
// are turned into their decimal string form.
func DecodeCandidates(items []map[string]any) (*Candidates, error) {
	var candidates []*Candidate

	cfg := &mapstructure.DecoderConfig{
		Result:           &candidates,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	return &Candidates{
		Items: candidates,
	}, nil
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	if c == nil {
		return nil
	}
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, c.Len())
	if c == nil {
		return names
	}
	for _, candidate := range c.Items {
		names = append(names, candidate.Name)
	}
	return names
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, c.Len())
	if c == nil {
		return ids
	}
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID)
	}
	return ids
}
