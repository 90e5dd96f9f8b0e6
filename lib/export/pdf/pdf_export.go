package pdfexport

import (
	"bytes"
	"strings"

	resumeapimodels "cvforge-backend/models/api/resume"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	pageMargin = 15.0
	lineHt     = 6.0
)

// GenerateResume renders the resume as an A4 PDF using the core Helvetica
// font, so no font files are needed at runtime.
func GenerateResume(r resumeapimodels.Resume, skills []string) (pdfFile []byte, err error) {
	return generate(r, skills, true)
}

func generate(r resumeapimodels.Resume, skills []string, compress bool) (pdfFile []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("GenerateResume panic recover: %v", rec)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := "Resume"
	if r.Name != "" {
		title = "Resume - " + r.Name
	}
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()

	// header: name left, contacts right
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(110, 10, tr(r.Name), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(r.Email), "", 2, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr(r.Phone), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	if r.Title != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(r.Title), "", "L", false)
	}
	if r.Summary != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, lineHt, tr(r.Summary), "", "L", false)
	}

	section(pdf, "Experience")
	for _, exp := range r.Experience {
		pdf.SetFont("Helvetica", "B", 11)
		head := exp.Role
		if exp.Company != "" {
			head += " — " + exp.Company
		}
		pdf.MultiCell(0, lineHt, tr(head), "", "L", false)
		pdf.SetFont("Helvetica", "I", 10)
		if exp.Period != "" {
			pdf.MultiCell(0, 5, tr(exp.Period), "", "L", false)
		}
		pdf.SetFont("Helvetica", "", 10)
		if exp.Details != "" {
			pdf.MultiCell(0, 5, tr(exp.Details), "", "L", false)
		}
		pdf.Ln(1)
	}

	section(pdf, "Education")
	pdf.SetFont("Helvetica", "", 10)
	for _, ed := range r.Education {
		line := ed.Degree + " — " + ed.School + " (" + ed.Year + ")"
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	section(pdf, "Skills")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(strings.Join(skills, ", ")), "", "L", false)

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, name string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, name, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}
