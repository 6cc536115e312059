// Package movielens reads the MovieLens rating file formats.
//
// Two layouts are supported: the comma-separated ml-latest layout
// (ratings.csv, with a header row) and the ::-separated ml-1m/ml-10m
// layout (ratings.dat). Open dispatches on the file extension and
// transparently decompresses .gz files.
package movielens

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/longlongdada/lenskit/ratings"
)

// ErrUnsupportedFile is returned by Open for file types it cannot decode.
var ErrUnsupportedFile = errors.New("unsupported rating file")

// Decode reads ratings in the ml-latest CSV layout
// (userId,movieId,rating,timestamp). A header row is detected and
// skipped; the timestamp column is optional.
func Decode(r io.Reader) ([]ratings.Rating, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var out []ratings.Rating

	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line++
		if line == 1 && isHeader(record) {
			continue
		}

		rt, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		out = append(out, rt)
	}

	return out, nil
}

// DecodeDat reads ratings in the ml-1m layout
// (UserID::MovieID::Rating::Timestamp). Blank lines are skipped.
func DecodeDat(r io.Reader) ([]ratings.Rating, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []ratings.Rating

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		rt, err := parseRecord(strings.Split(text, "::"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return out, nil
}

// Open reads a rating file from disk, keyed on the file extension:
// .csv for Decode, .dat for DecodeDat, with an optional .gz layer on
// either.
func Open(path string) ([]ratings.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f

	name := path
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer func() { _ = gz.Close() }()

		r = gz
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return Decode(r)
	case ".dat":
		return DecodeDat(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	return err != nil
}

func parseRecord(fields []string) (ratings.Rating, error) {
	if len(fields) < 3 {
		return ratings.Rating{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}

	user, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return ratings.Rating{}, fmt.Errorf("user id %q: %w", fields[0], err)
	}

	item, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return ratings.Rating{}, fmt.Errorf("item id %q: %w", fields[1], err)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return ratings.Rating{}, fmt.Errorf("rating %q: %w", fields[2], err)
	}

	var ts int64
	if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
		ts, err = strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
		if err != nil {
			return ratings.Rating{}, fmt.Errorf("timestamp %q: %w", fields[3], err)
		}
	}

	return ratings.Rating{
		User:      ratings.UserID(user),
		Item:      ratings.ItemID(item),
		Value:     value,
		Timestamp: ts,
	}, nil
}
