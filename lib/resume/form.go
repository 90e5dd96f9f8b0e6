package resumehandler

import (
	"strings"

	resumeapimodels "cvforge-backend/models/api/resume"

	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrUnknownField    = errors.New("unknown field")
)

// NewResume is the state a freshly mounted builder starts with.
func NewResume() resumeapimodels.Resume {
	return resumeapimodels.Resume{
		Experience: []resumeapimodels.Experience{{}},
		Education:  []resumeapimodels.Education{{}},
	}
}

// The functions below never mutate their input; row slices are copied.

func WithField(r resumeapimodels.Resume, field, value string) (resumeapimodels.Resume, error) {
	switch field {
	case "name":
		r.Name = value
	case "title":
		r.Title = value
	case "email":
		r.Email = value
	case "phone":
		r.Phone = value
	case "summary":
		r.Summary = value
	case "skills":
		r.Skills = value
	default:
		return r, errors.Wrapf(ErrUnknownField, "%q", field)
	}
	return r, nil
}

func AddExperience(r resumeapimodels.Resume) resumeapimodels.Resume {
	r.Experience = append(cloneExperience(r.Experience), resumeapimodels.Experience{})
	return r
}

func UpdateExperience(r resumeapimodels.Resume, idx int, field, value string) (resumeapimodels.Resume, error) {
	if idx < 0 || idx >= len(r.Experience) {
		return r, errors.Wrapf(ErrIndexOutOfRange, "experience %d", idx)
	}
	next := cloneExperience(r.Experience)
	row := &next[idx]
	switch field {
	case "company":
		row.Company = value
	case "role":
		row.Role = value
	case "period":
		row.Period = value
	case "details":
		row.Details = value
	default:
		return r, errors.Wrapf(ErrUnknownField, "%q", field)
	}
	r.Experience = next
	return r, nil
}

func RemoveExperience(r resumeapimodels.Resume, idx int) (resumeapimodels.Resume, error) {
	if idx < 0 || idx >= len(r.Experience) {
		return r, errors.Wrapf(ErrIndexOutOfRange, "experience %d", idx)
	}
	next := make([]resumeapimodels.Experience, 0, len(r.Experience)-1)
	next = append(next, r.Experience[:idx]...)
	r.Experience = append(next, r.Experience[idx+1:]...)
	return r, nil
}

func AddEducation(r resumeapimodels.Resume) resumeapimodels.Resume {
	r.Education = append(cloneEducation(r.Education), resumeapimodels.Education{})
	return r
}

func UpdateEducation(r resumeapimodels.Resume, idx int, field, value string) (resumeapimodels.Resume, error) {
	if idx < 0 || idx >= len(r.Education) {
		return r, errors.Wrapf(ErrIndexOutOfRange, "education %d", idx)
	}
	next := cloneEducation(r.Education)
	row := &next[idx]
	switch field {
	case "school":
		row.School = value
	case "degree":
		row.Degree = value
	case "year":
		row.Year = value
	default:
		return r, errors.Wrapf(ErrUnknownField, "%q", field)
	}
	r.Education = next
	return r, nil
}

func RemoveEducation(r resumeapimodels.Resume, idx int) (resumeapimodels.Resume, error) {
	if idx < 0 || idx >= len(r.Education) {
		return r, errors.Wrapf(ErrIndexOutOfRange, "education %d", idx)
	}
	next := make([]resumeapimodels.Education, 0, len(r.Education)-1)
	next = append(next, r.Education[:idx]...)
	r.Education = append(next, r.Education[idx+1:]...)
	return r, nil
}

// SkillList splits the comma separated skills string, dropping blanks.
func SkillList(skills string) []string {
	var out []string
	for _, s := range strings.Split(skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cloneExperience(in []resumeapimodels.Experience) []resumeapimodels.Experience {
	out := make([]resumeapimodels.Experience, len(in), len(in)+1)
	copy(out, in)
	return out
}

func cloneEducation(in []resumeapimodels.Education) []resumeapimodels.Education {
	out := make([]resumeapimodels.Education, len(in), len(in)+1)
	copy(out, in)
	return out
}
