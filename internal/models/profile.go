package models

type EducationLevel string

const (
	EducationPhD          EducationLevel = "Phd"
	EducationMasters      EducationLevel = "Masters"
	EducationBachelors    EducationLevel = "Bachelors"
	EducationHighSchool   EducationLevel = "High School"
	EducationNotSpecified EducationLevel = "Not Specified"
)

// EducationPriority is the order in which education buckets are checked.
var EducationPriority = []EducationLevel{
	EducationPhD,
	EducationMasters,
	EducationBachelors,
	EducationHighSchool,
}

const UnknownName = "Unknown"

type ExtractedProfile struct {
	Name            string
	Email           string
	Phone           string
	Skills          []string
	ExperienceYears float64
	EducationLevel  EducationLevel
}
