package xlsexport

import (
	"bytes"

	coachapimodels "cvforge-backend/models/api/coach"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportTranscript(role string, messages []coachapimodels.Message) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const transcriptSheet = "Transcript"

var transcriptHeaders = []string{"#", "From", "Text"}

func (i impl) ExportTranscript(role string, messages []coachapimodels.Message) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	if role != "" {
		row++
		if err := writeCell(f, sheet, 1, row, "Target role"); err != nil {
			return nil, errors.Wrap(err, "write role line")
		}
		if err := writeCell(f, sheet, 2, row, role); err != nil {
			return nil, errors.Wrap(err, "write role line")
		}
	}
	row, err := writeHeader(f, sheet, row, transcriptHeaders, []float64{6, 10, 100})
	if err != nil {
		return nil, errors.Wrap(err, "write xlsx header")
	}
	if len(messages) != 0 {
		if err = applyDataCellStyle(f, sheet, 1, row+1, len(transcriptHeaders), row+len(messages)); err != nil {
			return nil, errors.Wrap(err, "style xlsx rows")
		}
		for idx, msg := range messages {
			row++
			if err = writeCell(f, sheet, 1, row, idx+1); err != nil {
				return nil, errors.Wrap(err, "write xlsx row")
			}
			if err = writeCell(f, sheet, 2, row, string(msg.From)); err != nil {
				return nil, errors.Wrap(err, "write xlsx row")
			}
			if err = writeCell(f, sheet, 3, row, msg.Text); err != nil {
				return nil, errors.Wrap(err, "write xlsx row")
			}
		}
	}
	if err = f.SetSheetName(sheet, transcriptSheet); err != nil {
		return nil, errors.Wrap(err, "rename xlsx sheet")
	}
	return f.WriteToBuffer()
}
