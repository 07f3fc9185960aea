package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// LoadTable reads the course offerings file at path into raw rows keyed by
// header.
func LoadTable(path string, delim rune) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDatasetUnreadable.Code, appErrors.ErrDatasetUnreadable.Status,
			"failed to open "+path+", please make sure the file exists")
	}
	defer f.Close()
	return ReadTable(f, delim)
}

// ReadTable parses delimited text. Header names are kept verbatim, a UTF-8
// byte order mark is dropped and blank lines are skipped.
func ReadTable(in io.Reader, delim rune) (model.Table, error) {
	br := bufio.NewReader(in)
	if r, _, err := br.ReadRune(); err == nil && r != '\ufeff' {
		_ = br.UnreadRune()
	}

	r := csv.NewReader(br)
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return model.Table{}, nil
	}
	if err != nil {
		return nil, parseError(err)
	}

	table := model.Table{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		if blank(record) {
			continue
		}
		row := make(model.Row, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table = append(table, row)
	}
	return table, nil
}

func parseError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrDatasetUnreadable.Code, appErrors.ErrDatasetUnreadable.Status,
		"failed to parse course data, please check the data integrity and format")
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
