// Package input reads URL lists for batch runs from txt, csv, and xlsx files.
package input

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadURLs loads a URL list from path, dispatching on the file extension.
// Supported formats: .txt (one URL per line), .csv and .xlsx (first column).
// Blank lines, comment lines, and header cells are skipped.
func ReadURLs(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return readTXT(path)
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, eris.Errorf("input: unsupported file type %q", filepath.Ext(path))
	}
}

func readTXT(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open txt")
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "input: scan txt")
	}
	return urls, nil
}

func readCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var urls []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "input: read csv")
		}
		if len(record) == 0 {
			continue
		}
		if u, ok := asURL(record[0]); ok {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func readXLSX(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("input: xlsx file has no sheets")
	}

	var urls []string
	for _, row := range f.Sheets[0].Rows {
		if len(row.Cells) == 0 {
			continue
		}
		if u, ok := asURL(row.Cells[0].String()); ok {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// asURL filters out blanks and header cells like "url" or "website".
func asURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, ".") {
		return "", false
	}
	return s, true
}
