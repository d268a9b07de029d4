package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

var summaryHeader = []string{"Indicador", "Valor"}

var productivityHeader = []string{
	"Responsável", "Total", "Concluídos", "Em Andamento", "Atrasados", "Taxa de Conclusão (%)",
}

// ToExcel renders the report as a workbook with a summary sheet, the
// per-type tally and the per-responsible table.
func ToExcel(rep *ProductivityReport) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only on error paths

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, rep, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTypesSheet(f, rep, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeProductivitySheet(f, rep, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Resumo"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, rep *ProductivityReport, headerStyle int) error {
	const sheet = "Resumo"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	rows := [][]any{
		{"Total de Documentos", rep.TotalDocuments},
		{"Documentos Concluídos", rep.CompletedDocuments},
		{"Documentos Em Andamento", rep.InProgressDocuments},
		{"Documentos Atrasados", rep.OverdueDocuments},
		{"Taxa de Conclusão (%)", rep.CompletionRate},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 28)
}

func writeTypesSheet(f *excelize.File, rep *ProductivityReport, headerStyle int) error {
	const sheet = "Por Tipo"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	header := []string{"Tipo", "Documentos"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	names := make([]string, 0, len(rep.DocumentsByType))
	for name := range rep.DocumentsByType {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{name, rep.DocumentsByType[name]}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 28)
}

func writeProductivitySheet(f *excelize.File, rep *ProductivityReport, headerStyle int) error {
	const sheet = "Produtividade"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &productivityHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return err
	}
	for i, p := range rep.UserProductivity {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{p.UserName, p.TotalDocuments, p.CompletedDocuments, p.InProgressDocuments, p.OverdueDocuments, p.CompletionRate}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 28)
}
