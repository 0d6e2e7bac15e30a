package model

// StudentProfile carries the free-text preferences the generation prompt is
// rendered from. Immutable once submitted with a request; no validation
// beyond what the client sends.
type StudentProfile struct {
	Stream                string   `json:"stream"`
	Year                  string   `json:"year"`
	Interests             []string `json:"interests"`
	SkillLevel            string   `json:"skillLevel"`
	PreferredTechnologies []string `json:"preferredTechnologies"`
	TeamSize              string   `json:"teamSize"`
	ProjectDuration       string   `json:"projectDuration"`
}

type ProjectPhase struct {
	Name     string   `json:"name"`
	Duration string   `json:"duration"`
	Tasks    []string `json:"tasks"`
}

type TechnicalRequirements struct {
	Technologies   []string `json:"technologies"`
	SkillsRequired []string `json:"skillsRequired"`
	Difficulty     string   `json:"difficulty"`
}

type ProjectStructure struct {
	Phases []ProjectPhase `json:"phases"`
}

type ImplementationGuide struct {
	GettingStarted   []string `json:"gettingStarted"`
	KeyResources     []string `json:"keyResources"`
	CommonChallenges []string `json:"commonChallenges"`
}

// ProjectIdea is the generation target. Phases appears twice on the wire
// (top level and under projectStructure); clients read either path, so both
// mount points are kept even though they carry the same list.
type ProjectIdea struct {
	Title                 string                `json:"title"`
	Overview              string                `json:"overview"`
	Objectives            []string              `json:"objectives"`
	TechnicalRequirements TechnicalRequirements `json:"technicalRequirements"`
	Technologies          []string              `json:"technologies"`
	SkillsRequired        []string              `json:"skillsRequired"`
	Difficulty            string                `json:"difficulty"`
	ProjectStructure      ProjectStructure      `json:"projectStructure"`
	Phases                []ProjectPhase        `json:"phases"`
	Deliverables          []string              `json:"deliverables"`
	LearningOutcomes      []string              `json:"learningOutcomes"`
	ImplementationGuide   ImplementationGuide   `json:"implementationGuide"`
	Variations            []string              `json:"variations"`
}
