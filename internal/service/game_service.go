package service

import "ideaforge/internal/model"

// GameService serves the quiz catalog shown before generation. The catalog
// is static content, identical for every caller.
type GameService interface {
	GetGameSteps() []model.GameStep
}

type gameService struct{}

func NewGameService() GameService {
	return &gameService{}
}

func (s *gameService) GetGameSteps() []model.GameStep {
	return gameSteps
}

// GameScore sums the points of well-formed quiz responses. A well-formed
// entry is a JSON object with a numeric "points" field; anything else
// contributes zero. Malformed input never errors here.
func GameScore(responses []any) int {
	total := 0
	for _, response := range responses {
		entry, ok := response.(map[string]any)
		if !ok {
			continue
		}
		if points, ok := entry["points"].(float64); ok {
			total += int(points)
		}
	}
	return total
}

var gameSteps = []model.GameStep{
	{
		StepID:   1,
		Question: "What's your primary area of study?",
		Options: []string{
			"Computer Science & Engineering",
			"Electronics & Communication",
			"Mechanical Engineering",
			"Civil Engineering",
			"Biotechnology",
			"Data Science & Analytics",
			"Other Engineering",
			"Pure Sciences (Physics, Chemistry, Math)",
			"Business & Management",
		},
		Category: "academic_background",
		Points:   10,
	},
	{
		StepID:   2,
		Question: "What's your current academic year?",
		Options: []string{
			"1st Year (Freshman)",
			"2nd Year (Sophomore)",
			"3rd Year (Junior)",
			"4th Year (Senior)",
			"Graduate Student",
			"Recent Graduate",
		},
		Category: "academic_level",
		Points:   5,
	},
	{
		StepID:   3,
		Question: "Which technologies excite you the most?",
		Options: []string{
			"Web Development (React, Node.js, Django)",
			"Mobile Development (React Native, Flutter)",
			"Artificial Intelligence & Machine Learning",
			"Data Science & Analytics",
			"Cloud Computing (AWS, Google Cloud)",
			"Blockchain & Cryptocurrency",
			"IoT & Embedded Systems",
			"Game Development",
			"Cybersecurity",
			"DevOps & Infrastructure",
		},
		Category: "technology_interest",
		Points:   15,
	},
	{
		StepID:   4,
		Question: "How would you describe your current skill level?",
		Options: []string{
			"Beginner (Just starting out)",
			"Intermediate (Some projects completed)",
			"Advanced (Multiple complex projects)",
			"Expert (Industry experience)",
		},
		Category: "skill_assessment",
		Points:   10,
	},
	{
		StepID:   5,
		Question: "What's your preferred team size for projects?",
		Options: []string{
			"Solo (Individual project)",
			"Small team (2-3 people)",
			"Medium team (4-6 people)",
			"Large team (7+ people)",
		},
		Category: "collaboration_preference",
		Points:   5,
	},
	{
		StepID:   6,
		Question: "How much time can you dedicate to this project?",
		Options: []string{
			"1-2 weeks (Quick prototype)",
			"1 month (Solid MVP)",
			"3 months (Full-featured project)",
			"6+ months (Comprehensive solution)",
		},
		Category: "time_commitment",
		Points:   10,
	},
	{
		StepID:   7,
		Question: "What type of impact do you want to create?",
		Options: []string{
			"Solve a personal problem",
			"Help your local community",
			"Address a global challenge",
			"Create something innovative/fun",
			"Build for commercial success",
			"Contribute to open source",
		},
		Category: "impact_motivation",
		Points:   15,
	},
	{
		StepID:   8,
		Question: "Which domain interests you most for your project?",
		Options: []string{
			"Healthcare & Medical Technology",
			"Education & Learning Platforms",
			"Environmental & Sustainability",
			"Finance & Fintech",
			"Social Media & Communication",
			"E-commerce & Marketplace",
			"Entertainment & Gaming",
			"Productivity & Tools",
			"Transportation & Logistics",
			"Agriculture & Food Tech",
		},
		Category: "domain_preference",
		Points:   20,
	},
}
