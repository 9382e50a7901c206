package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guttosm/stockfn/internal/domain/models"
	"github.com/tidwall/gjson"
)

// expectedHeaders enforces strict column ordering for CSV seed files.
var expectedHeaders = []string{
	"category",
	"code",
	"countryCode",
	"dy",
	"name",
	"pe",
	"price",
	"roe",
	"symbol",
	"top",
}

var errMissingCode = errors.New("missing code")

// parseFile dispatches on the file extension.
func parseFile(ctx context.Context, path string) ([]models.Stock, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return parseJSON(body)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		defer func() { _ = f.Close() }()
		return parseCSV(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported seed file %q", filepath.Base(path))
	}
}

// parseJSON accepts either a top-level array of stocks or {"stocks": [...]}.
func parseJSON(body []byte) ([]models.Stock, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}

	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		list = list.Get("stocks")
	}
	if !list.IsArray() {
		return nil, errors.New(`expected an array or an object with a "stocks" array`)
	}

	var out []models.Stock
	var perr error
	list.ForEach(func(key, v gjson.Result) bool {
		idx := int(key.Int())
		if !v.IsObject() {
			perr = fmt.Errorf("item %d: expected object", idx)
			return false
		}
		code := v.Get("code")
		if !code.Exists() || code.String() == "" {
			perr = fmt.Errorf("item %d: %w", idx, errMissingCode)
			return false
		}
		out = append(out, models.Stock{
			Category:    v.Get("category").String(),
			Code:        code.String(),
			CountryCode: v.Get("countryCode").String(),
			DY:          v.Get("dy").Float(),
			Name:        v.Get("name").String(),
			PE:          v.Get("pe").Float(),
			Price:       v.Get("price").Float(),
			ROE:         v.Get("roe").Float(),
			Symbol:      v.Get("symbol").String(),
			Top:         v.Get("top").Bool(),
		})
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return out, nil
}

// parseCSV reads a ';'-separated file with a strict header.
// Empty cells become zero values; numbers may use a decimal comma.
func parseCSV(ctx context.Context, r io.Reader) ([]models.Stock, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // checked explicitly below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	var out []models.Stock
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(expectedHeaders), len(rec))
		}

		s, err := recordToStock(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// recordToStock converts one CSV record (length already validated) into a Stock.
func recordToStock(rec []string) (models.Stock, error) {
	var s models.Stock
	var err error

	s.Category = strings.TrimSpace(rec[0])
	s.Code = strings.TrimSpace(rec[1])
	if s.Code == "" {
		return s, errMissingCode
	}
	s.CountryCode = strings.TrimSpace(rec[2])
	if s.DY, err = parseNumber("dy", rec[3]); err != nil {
		return s, err
	}
	s.Name = strings.TrimSpace(rec[4])
	if s.PE, err = parseNumber("pe", rec[5]); err != nil {
		return s, err
	}
	if s.Price, err = parseNumber("price", rec[6]); err != nil {
		return s, err
	}
	if s.ROE, err = parseNumber("roe", rec[7]); err != nil {
		return s, err
	}
	s.Symbol = strings.TrimSpace(rec[8])

	if v := strings.TrimSpace(rec[9]); v != "" {
		if s.Top, err = strconv.ParseBool(v); err != nil {
			return s, fmt.Errorf("invalid top: %v", err)
		}
	}
	return s, nil
}

func parseNumber(field, raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", field, err)
	}
	return f, nil
}
