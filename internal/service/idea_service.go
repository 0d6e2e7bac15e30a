package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ideaforge/internal/apperr"
	"ideaforge/internal/dto"
	"ideaforge/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// IdeaService runs the generation pipeline: score the quiz responses, render
// the prompt, invoke the text-generation endpoint, extract and repair the
// JSON reply, validate its structure, and materialize the typed idea.
type IdeaService interface {
	GenerateProjectIdea(ctx context.Context, req dto.GenerateIdeaRequest) (*model.ProjectIdea, error)
}

type ideaService struct {
	generator TextGenerator
}

func NewIdeaService(generator TextGenerator) IdeaService {
	return &ideaService{generator: generator}
}

func (s *ideaService) GenerateProjectIdea(ctx context.Context, req dto.GenerateIdeaRequest) (*model.ProjectIdea, error) {
	score := GameScore(req.GameResponses)
	prompt := buildIdeaPrompt(req.Query, req.StudentProfile, req.GameResponses, score)

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := extractIdeaJSON(text)
	if err != nil {
		log.Warn().Err(err).Msg("GenerateProjectIdea: could not parse generation reply")
		return nil, err
	}

	if err := validateIdeaStructure(raw); err != nil {
		log.Warn().Err(err).Msg("GenerateProjectIdea: reply failed structure validation")
		return nil, err
	}

	var idea model.ProjectIdea
	if err := json.Unmarshal(raw, &idea); err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidIdeaStructure,
			"Invalid project idea structure returned", err)
	}
	return &idea, nil
}

// extractIdeaJSON parses the endpoint reply, stripping a markdown code fence
// (optionally tagged json) when the bare parse fails. Anything that still
// does not parse is a malformed response.
func extractIdeaJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	stripped := trimmed
	if strings.HasPrefix(stripped, "```json") {
		stripped = stripped[len("```json"):]
	} else if strings.HasPrefix(stripped, "```") {
		stripped = stripped[len("```"):]
	}
	stripped = strings.TrimSuffix(strings.TrimSpace(stripped), "```")
	stripped = strings.TrimSpace(stripped)

	if !json.Valid([]byte(stripped)) {
		return nil, apperr.Newf(apperr.KindMalformedResponse,
			"generation reply is not valid JSON, with or without code fences")
	}
	return json.RawMessage(stripped), nil
}

// requiredIdeaFields is the presence-only contract for a generated idea.
// Nested shapes are deliberately unchecked: strengthening this would start
// rejecting replies that have always been accepted.
var requiredIdeaFields = []string{
	"title", "overview", "objectives", "technicalRequirements",
	"projectStructure", "deliverables", "learningOutcomes",
	"implementationGuide", "variations",
}

var ideaSchema = mustCompileIdeaSchema()

func mustCompileIdeaSchema() *jsonschema.Schema {
	required := make([]any, len(requiredIdeaFields))
	for i, field := range requiredIdeaFields {
		required[i] = field
	}
	doc := map[string]any{
		"type":     "object",
		"required": required,
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://project-idea.json"
	if err := c.AddResource(schemaURL, doc); err != nil {
		panic(fmt.Sprintf("add idea schema resource: %v", err))
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile idea schema: %v", err))
	}
	return compiled
}

func validateIdeaStructure(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return apperr.Wrap(apperr.KindMalformedResponse, "generation reply is not valid JSON", err)
	}
	if err := ideaSchema.Validate(parsed); err != nil {
		return apperr.Wrap(apperr.KindInvalidIdeaStructure,
			"Invalid project idea structure returned", err)
	}
	return nil
}

// buildIdeaPrompt renders the generation instruction. The embedded JSON
// schema is the wire contract the model was tuned against: field names and
// nesting must stay exactly as written, including the duplicated phases
// mount point.
func buildIdeaPrompt(query string, profile model.StudentProfile, gameResponses []any, gameScore int) string {
	responsesJSON, err := json.MarshalIndent(gameResponses, "", "  ")
	if err != nil {
		responsesJSON = []byte("[]")
	}

	return fmt.Sprintf(ideaPromptTemplate,
		profile.Stream,
		profile.Year,
		strings.Join(profile.Interests, ", "),
		profile.SkillLevel,
		strings.Join(profile.PreferredTechnologies, ", "),
		profile.TeamSize,
		profile.ProjectDuration,
		query,
		gameScore,
		responsesJSON,
	)
}

const ideaPromptTemplate = `Generate a detailed, personalized project idea for a student with the following profile:

**Student Profile:**
- Stream: %s
- Year: %s
- Interests: %s
- Skill Level: %s
- Preferred Technologies: %s
- Team Size: %s
- Project Duration: %s

**User Query:** %s

**Gamification Score:** %d/100 (Higher score indicates more specific preferences)

**Game Responses Context:**
%s

Please generate a comprehensive project idea that matches their profile and query. The response must be a valid JSON object with the following exact structure:

{
  "title": "Project Title",
  "overview": "Brief project description",
  "objectives": ["Objective 1", "Objective 2", "Objective 3"],
  "technicalRequirements": {
    "technologies": ["Tech1", "Tech2"],
    "skillsRequired": ["Skill1", "Skill2"],
    "difficulty": "Beginner/Intermediate/Advanced"
  },
  "technologies": ["Tech1", "Tech2", "Tech3"],
  "skillsRequired": ["Skill1", "Skill2", "Skill3"],
  "difficulty": "Beginner/Intermediate/Advanced",
  "projectStructure": {
    "phases": [
      {
        "name": "Phase 1: Planning & Setup",
        "duration": "Week 1",
        "tasks": ["Task 1", "Task 2", "Task 3"]
      },
      {
        "name": "Phase 2: Core Development",
        "duration": "Weeks 2-X",
        "tasks": ["Task 1", "Task 2", "Task 3"]
      }
    ]
  },
  "phases": [
    {
      "name": "Phase 1: Planning & Setup",
      "duration": "Week 1",
      "tasks": ["Task 1", "Task 2", "Task 3"]
    }
  ],
  "deliverables": ["Deliverable 1", "Deliverable 2"],
  "learningOutcomes": ["Learning 1", "Learning 2"],
  "implementationGuide": {
    "gettingStarted": ["Step 1", "Step 2"],
    "keyResources": ["Resource 1", "Resource 2"],
    "commonChallenges": ["Challenge 1", "Challenge 2"]
  },
  "variations": ["Variation 1", "Variation 2"]
}

Make sure the project is:
1. Appropriate for their skill level and academic year
2. Achievable within their preferred timeframe
3. Aligned with their technology preferences
4. Suitable for their preferred team size
5. Relevant to their interests and domain preferences

Return ONLY the JSON object, no additional text or formatting.`
