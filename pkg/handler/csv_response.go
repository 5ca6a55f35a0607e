package handler

import (
	"fmt"
	"net/http"

	"github.com/gocarina/gocsv"
)

type csvResponse struct {
	filename string
	rows     any
}

// CSV renders rows, a slice of structs with `csv` tags, as a downloadable
// CSV attachment.
func CSV(filename string, rows any) Response {
	return csvResponse{filename: filename, rows: rows}
}

func (c csvResponse) Render(w http.ResponseWriter, r *http.Request) error {
	data, err := gocsv.MarshalBytes(c.rows)
	if err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, c.filename))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}
