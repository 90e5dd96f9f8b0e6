package resumehandler

import (
	htmlexport "cvforge-backend/lib/export/html"
	pdfexport "cvforge-backend/lib/export/pdf"
	resumeapimodels "cvforge-backend/models/api/resume"

	"github.com/pkg/errors"
)

const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Export renders a standalone record, outside of any draft session.
func Export(rec resumeapimodels.Resume, format string, printDelayMs int) ([]byte, error) {
	rec = rec.Normalize()
	switch format {
	case FormatHTML:
		return htmlexport.RenderResume(rec, SkillList(rec.Skills), printDelayMs)
	case FormatPDF:
		return pdfexport.GenerateResume(rec, SkillList(rec.Skills))
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
}
