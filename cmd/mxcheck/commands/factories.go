package commands

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/Dynom/eri-tools/cmd/mxcheck/iterator"
)

func createTextIterator(r io.Reader) *iterator.CallbackIterator {
	scanner := bufio.NewScanner(r)

	return iterator.NewCallbackIterator(
		scanner.Scan,
		func() (string, error) {
			return scanner.Text(), nil
		},
		scanner.Err,
	)
}

func createCSVIterator(r io.Reader, opts csvOptions) *iterator.CallbackIterator {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var lastError error
	var eof bool

	if opts.skipRows > 0 {
		toSkip := opts.skipRows
		for ; toSkip > 0; toSkip-- {
			_, err := reader.Read()
			if err == io.EOF {
				eof = true
				break
			}

			if err != nil {
				lastError = err
			}
		}
	}

	return iterator.NewCallbackIterator(
		func() bool {
			return !eof
		},
		func() (string, error) {
			var value string

			record, err := reader.Read()
			if eof || err == io.EOF {
				eof = true
				return value, nil
			}

			if err != nil {
				lastError = err
				return "", err
			}

			if uint64(len(record)) > opts.column {
				value = record[opts.column]
			}

			return value, nil
		}, func() error {
			return lastError
		},
	)
}
