package models

type MatchResult struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	MatchScore  float64        `json:"matchScore"`
	SkillsFound []string       `json:"skillsFound"`
	Experience  float64        `json:"experience"`
	Education   EducationLevel `json:"education"`
}

type ScreeningResult struct {
	RequiredSkills []string      `json:"requiredSkills"`
	Candidates     []MatchResult `json:"candidates"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
