package usecase

import (
	"fmt"
	"io"
	"time"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Applications"

var exportHeader = []any{
	"Application ID", "Candidate Name", "Candidate Email", "Phone", "Status", "AI Score", "Notes", "Applied At", "Updated At",
}

type exportRow struct {
	Application domain.Application
	Candidate   *domain.Candidate
}

func (r exportRow) values() []any {
	var name, email, phone string
	if c := r.Candidate; c != nil {
		email = c.Email
		if c.Name != nil {
			name = *c.Name
		}
		if c.Phone != nil {
			phone = *c.Phone
		}
	}

	var score any
	if r.Application.AIScore != nil {
		score = *r.Application.AIScore
	}
	var notes string
	if r.Application.Notes != nil {
		notes = *r.Application.Notes
	}

	return []any{
		r.Application.ID.String(),
		name,
		email,
		phone,
		r.Application.Status,
		score,
		notes,
		r.Application.CreatedAt.Format(time.RFC3339),
		r.Application.UpdatedAt.Format(time.RFC3339),
	}
}

func writeApplicationsXLSX(w io.Writer, job *domain.Job, rows []exportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return apperror.Internal(err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: "Applications for " + job.Title}); err != nil {
		return apperror.Internal(err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return apperror.Internal(err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperror.Internal(err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return apperror.Internal(err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperror.Internal(err)
		}
		values := row.values()
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return apperror.Internal(err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return apperror.Internal(err)
	}
	if err := f.SetColWidth(exportSheet, "A", lastCol, 22); err != nil {
		return apperror.Internal(err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
