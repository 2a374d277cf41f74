package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// RenderCorpusList prints the corpora stored in the library.
func RenderCorpusList(w io.Writer, corpora []model.CorpusInfo) error {
	if len(corpora) == 0 {
		_, err := fmt.Fprintln(w, "No corpora imported.")
		return err
	}
	headers := []string{"Name", "Lines", "Imported", "Source"}
	rows := make([][]string, 0, len(corpora))
	for _, c := range corpora {
		rows = append(rows, []string{
			c.Name,
			fmt.Sprintf("%d", c.Lines),
			c.ImportedAt.Local().Format("2006-01-02 15:04"),
			c.SourcePath,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
