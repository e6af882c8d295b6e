package repository

import (
	"fmt"
	"strings"

	"anoa.com/storyassistant/internal/modules/tale/dto"
	"github.com/xuri/excelize/v2"
)

const (
	titleHeader = "Story Title"
	textHeader  = "Story Text"
)

type TaleRepository interface {
	LoadAll() ([]dto.Tale, error)
}

type xlsxTaleRepository struct {
	path string
}

// NewXLSXTaleRepository reads tales from the first sheet of a workbook whose
// header row contains "Story Title" and "Story Text".
func NewXLSXTaleRepository(path string) TaleRepository {
	return &xlsxTaleRepository{path: path}
}

func (r *xlsxTaleRepository) LoadAll() ([]dto.Tale, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tales workbook %s: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("tales workbook %s has no sheets", r.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read tales sheet: %w", err)
	}
	if len(rows) == 0 {
		return []dto.Tale{}, nil
	}

	titleCol, textCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case titleHeader:
			titleCol = i
		case textHeader:
			textCol = i
		}
	}
	if titleCol < 0 || textCol < 0 {
		return nil, fmt.Errorf("tales sheet must have %q and %q columns", titleHeader, textHeader)
	}

	tales := make([]dto.Tale, 0, len(rows)-1)
	for _, row := range rows[1:] {
		title := cell(row, titleCol)
		if title == "" {
			continue
		}
		tales = append(tales, dto.Tale{Title: title, Text: cell(row, textCol)})
	}

	return tales, nil
}

// cell tolerates the short rows excelize returns for trailing empty cells.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
