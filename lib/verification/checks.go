package verificationhandler

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"cvforge-backend/lib/utils/random"
	verifyapimodels "cvforge-backend/models/api/verify"
)

// FileMeta is what the checks get to see of an uploaded document.
type FileMeta struct {
	Name        string
	Size        int64
	ContentType string // empty when the client did not know the type
}

const (
	labelName     = "Filename OK"
	labelType     = "Filetype supported"
	labelMetadata = "Metadata looks valid"
	labelOCR      = "OCR / text extractable"

	detailPass   = "Document appears valid"
	detailReview = "Some checks failed; manual review recommended."

	// the two placeholder checks pass when the draw is above these
	metadataThreshold = 0.25
	ocrThreshold      = 0.4
)

var supportedType = regexp.MustCompile(`pdf|image|png|jpeg`)

// Evaluate runs the five checks. The metadata and OCR checks are coin flips
// drawn from src, in that order.
func Evaluate(meta FileMeta, maxSizeMB int, src random.Source) verifyapimodels.Report {
	typeSubject := meta.ContentType
	if typeSubject == "" {
		typeSubject = strings.ToLower(meta.Name)
	}
	checks := []verifyapimodels.Check{
		{Label: labelName, OK: meta.Name != "" && nameLength(meta.Name) > 3},
		{Label: fmt.Sprintf("Size < %dMB", maxSizeMB), OK: meta.Size < int64(maxSizeMB)*1024*1024},
		{Label: labelType, OK: supportedType.MatchString(typeSubject)},
		{Label: labelMetadata, OK: src.Float64() > metadataThreshold},
		{Label: labelOCR, OK: src.Float64() > ocrThreshold},
	}
	report := verifyapimodels.Report{
		Checks:  checks,
		Verdict: verifyapimodels.VerdictPass,
		Detail:  detailPass,
	}
	for _, c := range checks {
		if !c.OK {
			report.Verdict = verifyapimodels.VerdictReview
			report.Detail = detailReview
			break
		}
	}
	return report
}

// nameLength counts UTF-16 code units, the way browsers report File.name
// length, so a name of two emoji has length 4.
func nameLength(name string) int {
	return len(utf16.Encode([]rune(name)))
}
