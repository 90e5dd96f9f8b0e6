package resumeapimodels

import (
	apimodels "cvforge-backend/models/api"
)

type Experience struct {
	Company string `json:"company" validate:"max=500"`
	Role    string `json:"role" validate:"max=500"`
	Period  string `json:"period" validate:"max=200"`
	Details string `json:"details" validate:"max=10000"`
}

type Education struct {
	School string `json:"school" validate:"max=500"`
	Degree string `json:"degree" validate:"max=500"`
	Year   string `json:"year" validate:"max=50"`
}

// Resume is the raw record the builder edits. It is also the "copy JSON"
// payload and the input of the export-resume command.
type Resume struct {
	Name       string       `json:"name" validate:"max=500"`
	Title      string       `json:"title" validate:"max=500"`
	Email      string       `json:"email" validate:"max=500"`
	Phone      string       `json:"phone" validate:"max=100"`
	Summary    string       `json:"summary" validate:"max=10000"`
	Experience []Experience `json:"experience" validate:"max=100,dive"`
	Education  []Education  `json:"education" validate:"max=100,dive"`
	Skills     string       `json:"skills" validate:"max=5000"`
}

func (r Resume) Validate() error {
	return apimodels.ValidateStruct(r)
}

// Normalize replaces nil row lists with empty ones so they encode as [].
func (r Resume) Normalize() Resume {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	return r
}

type FieldUpdate struct {
	Field string `json:"field" validate:"required,oneof=name title email phone summary skills"`
	Value string `json:"value" validate:"max=10000"`
}

func (r FieldUpdate) Validate() error {
	return apimodels.ValidateStruct(r)
}

type ExperienceUpdate struct {
	Field string `json:"field" validate:"required,oneof=company role period details"`
	Value string `json:"value" validate:"max=10000"`
}

func (r ExperienceUpdate) Validate() error {
	return apimodels.ValidateStruct(r)
}

type EducationUpdate struct {
	Field string `json:"field" validate:"required,oneof=school degree year"`
	Value string `json:"value" validate:"max=500"`
}

func (r EducationUpdate) Validate() error {
	return apimodels.ValidateStruct(r)
}

type ResumeView struct {
	ID     string `json:"id"`
	Resume Resume `json:"resume"`
}

type PreviewView struct {
	ID   string `json:"id"`
	Text string `json:"text"` // live preview rendered as plain text
}
