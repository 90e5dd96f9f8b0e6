package coachhandler

import (
	"regexp"
	"strings"

	"cvforge-backend/lib/utils/random"
	coachapimodels "cvforge-backend/models/api/coach"
)

const Greeting = "Hi — I am your interview coach. Tell me what role you are preparing for or click a sample question."

// reply kinds, used as metric labels
const (
	KindIntro      = "intro"
	KindMotivation = "motivation"
	KindChallenge  = "challenge"
	KindLongNoNum  = "long_no_number"
	KindLongNum    = "long_with_number"
	KindGeneric    = "generic"
)

const (
	replyIntro      = "Start with a 2-3 sentence summary: who you are, your strongest skill or domain, and a recent accomplishment. Example: 'I'm a frontend engineer with 4 years building responsive apps. Recently I reduced page load time by 30% at X, improving conversions.'"
	replyMotivation = "Mention the company/role alignment, and one key strength you bring. Show enthusiasm and specific fit (team, tech, mission)."
	replyChallenge  = "Structure using Situation -> Action -> Result. Be concise: describe goal, steps you took, and measurable outcome (numbers if possible)."
	replyLongNoNum  = "Good content. Consider adding a measurable result (numbers, % improvement) to strengthen the answer."
	replyLongNum    = "Nice — you included specifics. Remember to tie the example back to role-relevant skills and keep it <2 minutes when spoken."

	// answers with more words than this get the long-answer feedback
	longAnswerWords = 20
)

var genericReplies = []string{
	"Short answer. Try including a specific accomplishment and metrics.",
	"Good start — add a problem, action, result structure (PAR).",
	"Use more specific numbers/examples to demonstrate impact.",
	"Looks fine. Try adjusting tone for the role: highlight technical work for engineering roles, product outcomes for PM roles.",
}

var digit = regexp.MustCompile(`\d`)

var samples = []coachapimodels.SampleQuestion{
	{Index: 0, Title: "Tell me about yourself", Question: "Tell me about yourself."},
	{Index: 1, Title: "Why do you want this role?", Question: "Why do you want this role?"},
	{Index: 2, Title: "Challenge & solution", Question: "Describe a challenge you faced and how you solved it."},
	{Index: 3, Title: "Walk me through your resume", Question: "Walk me through your resume."},
}

func Samples() []coachapimodels.SampleQuestion {
	return append([]coachapimodels.SampleQuestion(nil), samples...)
}

// Respond picks the coach reply for userText. Pattern rules win over the
// length heuristic; the random pick from src is only drawn when nothing
// else matched.
func Respond(userText string, src random.Source) (reply, kind string) {
	text := strings.ToLower(userText)
	switch {
	case strings.Contains(text, "tell me about") || strings.Contains(text, "about yourself"):
		return replyIntro, KindIntro
	case strings.Contains(text, "why") && strings.Contains(text, "want"):
		return replyMotivation, KindMotivation
	case strings.Contains(text, "challenge") || strings.Contains(text, "problem"):
		return replyChallenge, KindChallenge
	}
	// split on single spaces, so runs of spaces count as extra words
	if len(strings.Split(text, " ")) > longAnswerWords {
		if !digit.MatchString(text) {
			return replyLongNoNum, KindLongNoNum
		}
		return replyLongNum, KindLongNum
	}
	return genericReplies[random.Pick(src, len(genericReplies))], KindGeneric
}

// GenericReplies lists the fallback tips.
func GenericReplies() []string {
	return append([]string(nil), genericReplies...)
}
