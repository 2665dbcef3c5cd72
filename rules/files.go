package rules

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"
)

// ReadObjectCodesFile parses an object-code tabular rule file. A malformed
// file is reported as InvalidFile and contributes no rows; other files the
// caller reads are unaffected.
func ReadObjectCodesFile(name string, data io.Reader, report *Report) []ObjectCodeRow {
	var rows []ObjectCodeRow
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		report.error(InvalidFile, "%s: %s", name, err)
		return nil
	}
	return rows
}

// ReadPropertyEditsFile parses a property-edit tabular rule file.
func ReadPropertyEditsFile(name string, data io.Reader, report *Report) []PropertyEditRow {
	var rows []PropertyEditRow
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		report.error(InvalidFile, "%s: %s", name, err)
		return nil
	}
	return rows
}

// ReadConsolidationFile parses the JSON consolidation rule file.
func ReadConsolidationFile(name string, data io.Reader, report *Report) (ConsolidationFile, bool) {
	var file ConsolidationFile
	if err := json.NewDecoder(data).Decode(&file); err != nil {
		report.error(InvalidFile, "%s: %s", name, err)
		return ConsolidationFile{}, false
	}
	return file, true
}
