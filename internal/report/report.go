// Package report marshals a core.Result into the two export formats
// the teacher's optimizer produces (pkg/optimizer.Optimize): an
// indented JSON document and, here additionally, a flat CSV table
// (spec.md §6's "JSON or CSV export").
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"

	"CenterScheduling/internal/core"
)

const (
	jsonIndentPrefix = ""
	jsonIndentStep   = "  "
)

// rowJSON is one wide schedule row as exported, staff names sorted for
// a stable rendering.
type rowJSON struct {
	Day       string            `json:"day"`
	TimeBlock string            `json:"timeBlock"`
	Staff     map[string]string `json:"staff"`
}

// resultJSON mirrors the teacher's exportJSON: a thin wrapper struct
// whose sole purpose is a stable top-level JSON shape.
type resultJSON struct {
	Day  string    `json:"day"`
	Rows []rowJSON `json:"rows"`
}

// JSON renders a core.Result as indented JSON.
func JSON(result *core.Result) ([]byte, error) {
	out := resultJSON{Day: result.Day}
	for _, row := range result.Rows {
		out.Rows = append(out.Rows, rowJSON{
			Day:       row.Day,
			TimeBlock: row.TimeBlock,
			Staff:     row.Staff,
		})
	}
	return json.MarshalIndent(out, jsonIndentPrefix, jsonIndentStep)
}

// CSV writes a core.Result as a flat "day,timeBlock,staff,child" table,
// one line per staff assignment, staff names sorted within a block for
// determinism.
func CSV(w io.Writer, result *core.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"day", "timeBlock", "staff", "child"}); err != nil {
		return err
	}
	for _, row := range result.Rows {
		staffNames := make([]string, 0, len(row.Staff))
		for staff := range row.Staff {
			staffNames = append(staffNames, staff)
		}
		sort.Strings(staffNames)
		for _, staff := range staffNames {
			record := []string{row.Day, row.TimeBlock, staff, row.Staff[staff]}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
