package resumehandler

import (
	"testing"

	resumeapimodels "cvforge-backend/models/api/resume"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestForm(t *testing.T) {
	t.Run(`new resume has one blank row each`, func(t *testing.T) {
		r := NewResume()
		require.Len(t, r.Experience, 1)
		require.Len(t, r.Education, 1)
		require.Equal(t, resumeapimodels.Experience{}, r.Experience[0])
	})

	t.Run(`add then remove experience restores the list`, func(t *testing.T) {
		r := NewResume()
		r, err := UpdateExperience(r, 0, "company", "Acme")
		require.Nil(t, err)
		before := append([]resumeapimodels.Experience(nil), r.Experience...)

		r = AddExperience(r)
		require.Len(t, r.Experience, 2)
		r, err = RemoveExperience(r, 1)
		require.Nil(t, err)
		require.Equal(t, before, r.Experience)
	})

	t.Run(`add then remove education restores the list`, func(t *testing.T) {
		r := NewResume()
		r, err := UpdateEducation(r, 0, "school", "MIT")
		require.Nil(t, err)
		before := append([]resumeapimodels.Education(nil), r.Education...)

		r = AddEducation(r)
		r, err = RemoveEducation(r, len(r.Education)-1)
		require.Nil(t, err)
		require.Equal(t, before, r.Education)
	})

	t.Run(`removing a middle row keeps order`, func(t *testing.T) {
		r := resumeapimodels.Resume{Experience: []resumeapimodels.Experience{
			{Company: "a"}, {Company: "b"}, {Company: "c"},
		}}
		r, err := RemoveExperience(r, 1)
		require.Nil(t, err)
		require.Equal(t, []resumeapimodels.Experience{{Company: "a"}, {Company: "c"}}, r.Experience)
	})

	t.Run(`updates do not touch the input`, func(t *testing.T) {
		orig := NewResume()
		next, err := UpdateExperience(orig, 0, "role", "Dev")
		require.Nil(t, err)
		require.Equal(t, "", orig.Experience[0].Role)
		require.Equal(t, "Dev", next.Experience[0].Role)

		next = AddEducation(orig)
		require.Len(t, orig.Education, 1)
		require.Len(t, next.Education, 2)
	})

	t.Run(`every field is editable`, func(t *testing.T) {
		r := NewResume()
		for _, f := range []string{"name", "title", "email", "phone", "summary", "skills"} {
			var err error
			r, err = WithField(r, f, f+"-value")
			require.Nil(t, err)
		}
		require.Equal(t, "name-value", r.Name)
		require.Equal(t, "skills-value", r.Skills)

		for _, f := range []string{"company", "role", "period", "details"} {
			var err error
			r, err = UpdateExperience(r, 0, f, f)
			require.Nil(t, err)
		}
		require.Equal(t, resumeapimodels.Experience{Company: "company", Role: "role", Period: "period", Details: "details"}, r.Experience[0])

		for _, f := range []string{"school", "degree", "year"} {
			var err error
			r, err = UpdateEducation(r, 0, f, f)
			require.Nil(t, err)
		}
		require.Equal(t, resumeapimodels.Education{School: "school", Degree: "degree", Year: "year"}, r.Education[0])
	})

	t.Run(`bad index and field`, func(t *testing.T) {
		r := NewResume()
		_, err := RemoveExperience(r, 1)
		require.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = RemoveEducation(r, -1)
		require.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = UpdateExperience(r, 3, "role", "x")
		require.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = UpdateEducation(r, 0, "gpa", "x")
		require.True(t, errors.Is(err, ErrUnknownField))
		_, err = WithField(r, "photo", "x")
		require.True(t, errors.Is(err, ErrUnknownField))
	})

	t.Run(`skill list`, func(t *testing.T) {
		require.Equal(t, []string{"Go", "SQL", "k8s"}, SkillList(" Go, SQL ,, k8s ,"))
		require.Nil(t, SkillList(""))
		require.Nil(t, SkillList(" , "))
	})
}

func TestPreview(t *testing.T) {
	t.Run(`placeholders`, func(t *testing.T) {
		out := Preview(NewResume())
		require.Contains(t, out, "Your Name\nYour Title\n")
		require.Contains(t, out, "A short professional summary goes here.")
		require.Contains(t, out, "Role — \n")
		require.Contains(t, out, " —  ()\n")
	})

	t.Run(`filled record`, func(t *testing.T) {
		r := resumeapimodels.Resume{
			Name:       "Ann",
			Title:      "Dev",
			Email:      "ann@example.com",
			Summary:    "Builds things.",
			Experience: []resumeapimodels.Experience{{Company: "Acme", Role: "Lead", Period: "2020", Details: "Shipped"}},
			Education:  []resumeapimodels.Education{{School: "MIT", Degree: "BSc", Year: "2019"}},
			Skills:     "Go, SQL",
		}
		out := Preview(r)
		require.Contains(t, out, "Ann\nDev\nann@example.com\n")
		require.Contains(t, out, "Lead — Acme\n2020\nShipped\n")
		require.Contains(t, out, "BSc — MIT (2019)\n")
		require.Contains(t, out, "Skills\nGo, SQL\n")
		require.NotContains(t, out, "Your Name")
	})
}
