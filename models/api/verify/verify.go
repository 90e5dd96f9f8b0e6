package verifyapimodels

type Check struct {
	Label string `json:"label"`
	OK    bool   `json:"ok"`
}

type Verdict string

const (
	VerdictPass   Verdict = "PASS"
	VerdictReview Verdict = "REVIEW"
)

type Report struct {
	Checks  []Check `json:"checks"`
	Verdict Verdict `json:"verdict"`
	Detail  string  `json:"detail"`
}

type SessionView struct {
	ID       string  `json:"id"`
	FileName string  `json:"file_name,omitempty"` // current file, empty until one is chosen
	Pending  bool    `json:"pending"`             // checks are scheduled but not finished
	Report   *Report `json:"report"`              // null until the checks finish
}
