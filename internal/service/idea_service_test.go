package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"ideaforge/internal/apperr"
	"ideaforge/internal/dto"
	"ideaforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validIdeaJSON = `{
  "title": "Campus Collaboration Hub",
  "overview": "A web platform where students form project teams.",
  "objectives": ["Build a team finder", "Support real-time chat"],
  "technicalRequirements": {
    "technologies": ["React", "Node.js"],
    "skillsRequired": ["JavaScript", "REST APIs"],
    "difficulty": "Intermediate"
  },
  "technologies": ["React", "Node.js", "PostgreSQL"],
  "skillsRequired": ["JavaScript", "SQL"],
  "difficulty": "Intermediate",
  "projectStructure": {
    "phases": [
      {"name": "Phase 1: Planning & Setup", "duration": "Week 1", "tasks": ["Define scope"]}
    ]
  },
  "phases": [
    {"name": "Phase 1: Planning & Setup", "duration": "Week 1", "tasks": ["Define scope"]}
  ],
  "deliverables": ["Working MVP"],
  "learningOutcomes": ["Full-stack development"],
  "implementationGuide": {
    "gettingStarted": ["Set up repo"],
    "keyResources": ["React docs"],
    "commonChallenges": ["Scope creep"]
  },
  "variations": ["Mobile-first version"]
}`

func TestExtractIdeaJSON(t *testing.T) {
	bare, err := extractIdeaJSON(validIdeaJSON)
	require.NoError(t, err)

	fenced, err := extractIdeaJSON("```json\n" + validIdeaJSON + "\n```")
	require.NoError(t, err)
	assert.JSONEq(t, string(bare), string(fenced))

	plainFence, err := extractIdeaJSON("```\n" + validIdeaJSON + "\n```")
	require.NoError(t, err)
	assert.JSONEq(t, string(bare), string(plainFence))

	_, err = extractIdeaJSON("I could not produce a project idea, sorry.")
	require.Error(t, err)
	assert.Equal(t, apperr.KindMalformedResponse, apperr.KindOf(err))
}

func TestValidateIdeaStructure(t *testing.T) {
	require.NoError(t, validateIdeaStructure(json.RawMessage(validIdeaJSON)))

	// every required field missing on its own is a rejection
	var full map[string]any
	require.NoError(t, json.Unmarshal([]byte(validIdeaJSON), &full))
	for _, field := range requiredIdeaFields {
		t.Run("missing "+field, func(t *testing.T) {
			partial := make(map[string]any, len(full))
			for k, v := range full {
				partial[k] = v
			}
			delete(partial, field)
			raw, err := json.Marshal(partial)
			require.NoError(t, err)

			err = validateIdeaStructure(raw)
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidIdeaStructure, apperr.KindOf(err))
		})
	}
}

func TestValidateIdeaStructureIgnoresNestedShape(t *testing.T) {
	// presence-only: wrong nested types still pass
	loose := map[string]any{}
	for _, field := range requiredIdeaFields {
		loose[field] = "whatever"
	}
	raw, err := json.Marshal(loose)
	require.NoError(t, err)
	assert.NoError(t, validateIdeaStructure(raw))
}

func TestGenerateProjectIdea(t *testing.T) {
	gen := &fakeTextGenerator{reply: "```json\n" + validIdeaJSON + "\n```"}
	svc := NewIdeaService(gen)

	req := dto.GenerateIdeaRequest{
		Query: "Create a web app for student collaboration",
		StudentProfile: model.StudentProfile{
			Stream:                "Computer Science & Engineering",
			Year:                  "3rd Year (Junior)",
			Interests:             []string{"Web Development", "AI"},
			SkillLevel:            "Intermediate",
			PreferredTechnologies: []string{"React", "Node.js"},
			TeamSize:              "Small team (2-3 people)",
			ProjectDuration:       "3 months (Full-featured project)",
		},
		GameResponses: []any{
			map[string]any{"stepId": float64(1), "points": float64(10)},
			map[string]any{"stepId": float64(3), "points": float64(15)},
			map[string]any{"stepId": float64(8), "points": float64(20)},
		},
	}

	idea, err := svc.GenerateProjectIdea(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Campus Collaboration Hub", idea.Title)
	assert.Equal(t, "Intermediate", idea.TechnicalRequirements.Difficulty)
	require.Len(t, idea.ProjectStructure.Phases, 1)
	assert.Equal(t, "Phase 1: Planning & Setup", idea.ProjectStructure.Phases[0].Name)

	// the prompt carries the profile, the query, and the computed score
	assert.Contains(t, gen.prompt, "Computer Science & Engineering")
	assert.Contains(t, gen.prompt, "Create a web app for student collaboration")
	assert.Contains(t, gen.prompt, fmt.Sprintf("%d/100", 45))
	assert.Contains(t, gen.prompt, `"implementationGuide"`)
}

func TestGenerateProjectIdeaPropagatesGeneratorError(t *testing.T) {
	gen := &fakeTextGenerator{err: apperr.New(apperr.KindQuotaExhausted, "quota exceeded")}
	svc := NewIdeaService(gen)

	_, err := svc.GenerateProjectIdea(context.Background(), dto.GenerateIdeaRequest{Query: "anything"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindQuotaExhausted, apperr.KindOf(err))
}

func TestGenerateProjectIdeaRejectsIncompleteReply(t *testing.T) {
	gen := &fakeTextGenerator{reply: `{"title": "Only a title"}`}
	svc := NewIdeaService(gen)

	_, err := svc.GenerateProjectIdea(context.Background(), dto.GenerateIdeaRequest{Query: "anything"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidIdeaStructure, apperr.KindOf(err))
}

func TestBuildIdeaPromptEmbedsGameResponses(t *testing.T) {
	responses := []any{map[string]any{"stepId": float64(4), "answer": "Intermediate (Some projects completed)", "points": float64(10)}}
	prompt := buildIdeaPrompt("query", model.StudentProfile{Stream: "Biotechnology"}, responses, 10)

	assert.Contains(t, prompt, "Biotechnology")
	assert.Contains(t, prompt, "Intermediate (Some projects completed)")
	assert.True(t, strings.HasSuffix(prompt, "Return ONLY the JSON object, no additional text or formatting."))
}
