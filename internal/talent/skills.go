package talent

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SkillScore is the consensus score of one candidate on one skill.
type SkillScore struct {
	Skill string  `json:"skill"`
	Score float64 `json:"consensus_score"`
}

type Scores struct {
	Items []SkillScore
}

type detailResponse struct {
	Data struct {
		Data struct {
			Skillset []skillCategory `json:"skillset"`
		} `json:"data"`
	} `json:"data"`
}

type skillCategory struct {
	Name   string       `json:"name"`
	Skills []skillEntry `json:"skills"`
}

type skillEntry struct {
	Name string     `json:"name"`
	Pos  []position `json:"pos"`
}

type position struct {
	ConsensusScore *float64 `json:"consensus_score"`
}

func (c *Client) getScores(ctx context.Context, id string) (*Scores, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("candidate id is required")
	}

	apiURLPerson := fmt.Sprintf("%s%s/%s", c.APIURL, peoplePath, url.PathEscape(id))

	var detail detailResponse
	if err := c.getJSON(ctx, EndpointDetail, apiURLPerson, &detail); err != nil {
		return nil, err
	}

	return flatten(detail.Data.Data.Skillset), nil
}

// flatten walks categories in order. A skill without a first position or
// without a score in it is reported as 0.
func flatten(categories []skillCategory) *Scores {
	scores := &Scores{}
	for _, category := range categories {
		for _, skill := range category.Skills {
			var score float64
			if len(skill.Pos) > 0 && skill.Pos[0].ConsensusScore != nil {
				score = *skill.Pos[0].ConsensusScore
			}
			scores.Items = append(scores.Items, SkillScore{Skill: skill.Name, Score: score})
		}
	}
	return scores
}

func (s *Scores) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// Lookup returns the score of the first entry matching skill.
func (s *Scores) Lookup(skill string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	for _, item := range s.Items {
		if item.Skill == skill {
			return item.Score, true
		}
	}
	return 0, false
}
