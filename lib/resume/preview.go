package resumehandler

import (
	"fmt"
	"strings"

	resumeapimodels "cvforge-backend/models/api/resume"
)

const (
	placeholderName    = "Your Name"
	placeholderTitle   = "Your Title"
	placeholderSummary = "A short professional summary goes here."
	placeholderRole    = "Role"
)

// Preview renders the live preview pane as plain text.
func Preview(r resumeapimodels.Resume) string {
	var b strings.Builder
	b.WriteString(orDefault(r.Name, placeholderName) + "\n")
	b.WriteString(orDefault(r.Title, placeholderTitle) + "\n")
	if r.Email != "" {
		b.WriteString(r.Email + "\n")
	}
	if r.Phone != "" {
		b.WriteString(r.Phone + "\n")
	}

	b.WriteString("\nSummary\n")
	b.WriteString(orDefault(r.Summary, placeholderSummary) + "\n")

	b.WriteString("\nExperience\n")
	for _, exp := range r.Experience {
		fmt.Fprintf(&b, "%s — %s\n", orDefault(exp.Role, placeholderRole), exp.Company)
		if exp.Period != "" {
			b.WriteString(exp.Period + "\n")
		}
		if exp.Details != "" {
			b.WriteString(exp.Details + "\n")
		}
	}

	b.WriteString("\nEducation\n")
	for _, ed := range r.Education {
		fmt.Fprintf(&b, "%s — %s (%s)\n", ed.Degree, ed.School, ed.Year)
	}

	b.WriteString("\nSkills\n")
	b.WriteString(r.Skills + "\n")
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
