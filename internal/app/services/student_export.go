package services

import (
	"context"
	"fmt"

	"github.com/web79/smiportal/internal/app/models"
	"github.com/xuri/excelize/v2"
)

// StudentSheetName is the worksheet holding the student ledger
const StudentSheetName = "Students"

var studentExportHeader = []interface{}{
	"ID", "Full Name", "Email", "Phone Number", "Gender", "Course",
	"Payment Type", "Amount Agreed", "Amount Paid", "Balance", "Fully Paid", "Registered",
}

// ExportStudents renders the student ledger as an XLSX workbook with a
// totals row under the amount columns.
func (s *studentServiceImpl) ExportStudents(ctx context.Context, search string) ([]byte, error) {
	students, err := s.studentRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Error closing export workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", StudentSheetName); err != nil {
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}

	if err := f.SetSheetRow(StudentSheetName, "A1", &studentExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create export style: %w", err)
	}
	if err := f.SetCellStyle(StudentSheetName, "A1", "L1", bold); err != nil {
		return nil, fmt.Errorf("failed to style export header: %w", err)
	}

	var agreed, paid, balance float64
	for i, student := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(StudentSheetName, cell, studentExportRow(student)); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
		agreed += student.AmountAgreed
		paid += student.FirstPayment
		balance += student.Balance
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(students)+2)
	if err != nil {
		return nil, err
	}
	totals := []interface{}{"TOTAL", "", "", "", "", "", "", agreed, paid, balance}
	if err := f.SetSheetRow(StudentSheetName, totalCell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write export totals: %w", err)
	}

	if err := f.SetColWidth(StudentSheetName, "A", "L", 18); err != nil {
		return nil, fmt.Errorf("failed to size export columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export workbook: %w", err)
	}

	s.logger.Info().Int("students", len(students)).Msg("Student ledger exported")
	return buf.Bytes(), nil
}

func studentExportRow(student *models.Student) *[]interface{} {
	fullyPaid := "NO"
	if student.FullyPaid {
		fullyPaid = "YES"
	}
	row := []interface{}{
		student.ID.String(),
		student.FullName,
		student.Email,
		student.PhoneNumber,
		student.Gender,
		student.Course,
		string(student.PaymentType),
		student.AmountAgreed,
		student.FirstPayment,
		student.Balance,
		fullyPaid,
		student.CreatedAt.Format("2006-01-02"),
	}
	return &row
}
