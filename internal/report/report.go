package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/powerpak/pph2-and-rank/internal/store/model"
	"github.com/xuri/excelize/v2"
)

// WriteTSV writes the ranked report as tab-separated rows, one gene per
// line, no header. This is the primary output contract.
func WriteTSV(w io.Writer, scores []model.GeneScore) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, s := range scores {
		if err := cw.Write([]string{s.Gene, formatScore(s.Score)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the ranked report as a spreadsheet, with a header row
// since the sheet is meant for humans.
func WriteXLSX(w io.Writer, scores []model.GeneScore) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ranking"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"gene", "score"}); err != nil {
		return err
	}
	for i, s := range scores {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{s.Gene, s.Score}); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
