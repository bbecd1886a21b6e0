// Package ingest decodes the four primary input tables (spec.md §3)
// from CSV, following the teacher's header-driven column lookup
// (pkg/optimizer.loadWantFileData): read the header row once, resolve
// each column's index by name, then scan data rows positionally.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"CenterScheduling/internal/core"
	"CenterScheduling/pkg/log"
)

// column resolves a named header to its index, -1 when absent.
type column struct {
	name  string
	index int
}

func resolveColumns(header []string, names ...string) map[string]column {
	resolved := make(map[string]column, len(names))
	for _, name := range names {
		resolved[name] = column{name: name, index: -1}
	}
	for index, headerValue := range header {
		trimmed := strings.TrimSpace(headerValue)
		for _, name := range names {
			if strings.EqualFold(trimmed, name) {
				resolved[name] = column{name: name, index: index}
			}
		}
	}
	return resolved
}

func field(row []string, col column) string {
	if col.index < 0 || col.index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col.index])
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	var rows [][]string
	for {
		row, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, nil, readErr
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// CenterHours parses the CenterHours table: Day, Open, Close columns,
// Open/Close as half-hour indices.
func CenterHours(r io.Reader) ([]core.CenterHours, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := resolveColumns(header, "Day", "Open", "Close")
	result := make([]core.CenterHours, 0, len(rows))
	for _, row := range rows {
		open, err := strconv.Atoi(field(row, cols["Open"]))
		if err != nil {
			return nil, fmt.Errorf("CenterHours: invalid Open value %q: %w", field(row, cols["Open"]), err)
		}
		close, err := strconv.Atoi(field(row, cols["Close"]))
		if err != nil {
			return nil, fmt.Errorf("CenterHours: invalid Close value %q: %w", field(row, cols["Close"]), err)
		}
		result = append(result, core.CenterHours{
			Day:   field(row, cols["Day"]),
			Open:  open,
			Close: close,
		})
	}
	log.L().Info("ingest_center_hours", zap.Int("rows", len(result)))
	return result, nil
}

// StaffChild parses the StaffChild eligibility table: Child, Staff columns.
func StaffChild(r io.Reader) ([]core.StaffChildPair, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := resolveColumns(header, "Child", "Staff")
	result := make([]core.StaffChildPair, 0, len(rows))
	for _, row := range rows {
		result = append(result, core.StaffChildPair{
			Child: field(row, cols["Child"]),
			Staff: field(row, cols["Staff"]),
		})
	}
	log.L().Info("ingest_staff_child", zap.Int("rows", len(result)))
	return result, nil
}

// Roles parses the Roles table: Name, Role columns.
func Roles(r io.Reader) ([]core.Role, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := resolveColumns(header, "Name", "Role")
	result := make([]core.Role, 0, len(rows))
	for _, row := range rows {
		result = append(result, core.Role{
			Name: field(row, cols["Name"]),
			Role: field(row, cols["Role"]),
		})
	}
	log.L().Info("ingest_roles", zap.Int("rows", len(result)))
	return result, nil
}

// Absences parses the Absences table: Name, Day, Type, Start, End
// columns. Start/End are kept as core.RawTime so the hard constraint
// layer applies its own clamping rules (spec.md §4.3.5); a blank cell
// is an absent time, not a parse error.
func Absences(r io.Reader) ([]core.Absence, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := resolveColumns(header, "Name", "Day", "Type", "Start", "End")
	result := make([]core.Absence, 0, len(rows))
	for _, row := range rows {
		result = append(result, core.Absence{
			Name:  field(row, cols["Name"]),
			Day:   field(row, cols["Day"]),
			Type:  core.AbsenceType(field(row, cols["Type"])),
			Start: parseRawTime(field(row, cols["Start"])),
			End:   parseRawTime(field(row, cols["End"])),
		})
	}
	log.L().Info("ingest_absences", zap.Int("rows", len(result)))
	return result, nil
}

func parseRawTime(text string) core.RawTime {
	if text == "" {
		return core.RawTime{}
	}
	if numeric, err := strconv.ParseFloat(text, 64); err == nil {
		return core.RawTime{Present: true, HasNumeric: true, Numeric: numeric}
	}
	return core.RawTime{Present: true, Text: text}
}
