package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elliot-ia/elliot/internal/devlab"
)

// BoardFileName is elliot-devlab-YYYY-MM-DD with the extension of format.
func BoardFileName(format Format, exportedAt time.Time) string {
	return fmt.Sprintf("elliot-devlab-%s.%s", exportedAt.Format(time.DateOnly), format)
}

// WriteBoardFile writes a dev lab snapshot under dir as json or xlsx and
// returns the file path.
func WriteBoardFile(dir string, snapshot devlab.Snapshot, format Format) (string, error) {
	if format != FormatJSON && format != FormatXLSX {
		return "", fmt.Errorf("format %s is not supported for the dev lab board, use json or xlsx", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, BoardFileName(format, snapshot.ExportedAt))

	if format == FormatXLSX {
		if err := writeBoardXLSX(path, snapshot); err != nil {
			return "", err
		}
		return path, nil
	}

	contents, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json.MarshalIndent > %w", err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

func writeBoardXLSX(path string, snapshot devlab.Snapshot) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", "Comments"); err != nil {
		return fmt.Errorf("f.SetSheetName > %w", err)
	}
	if _, err := f.NewSheet("Ideas"); err != nil {
		return fmt.Errorf("f.NewSheet(Ideas) > %w", err)
	}

	comments := make([][]any, 0, len(snapshot.Comments))
	for _, c := range snapshot.Comments {
		comments = append(comments, []any{c.ID, c.Author, c.Message, c.CreatedAt.Format(time.DateTime)})
	}
	if err := writeSheet(f, "Comments", []any{"ID", "Author", "Message", "Created At"}, comments); err != nil {
		return err
	}

	ideas := make([][]any, 0, len(snapshot.Ideas))
	for _, idea := range snapshot.Ideas {
		ideas = append(ideas, []any{idea.ID, idea.Title, idea.Description, idea.Votes, idea.CreatedAt.Format(time.DateTime)})
	}
	if err := writeSheet(f, "Ideas", []any{"ID", "Title", "Description", "Votes", "Created At"}, ideas); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("f.SaveAs(%s) > %w", path, err)
	}
	return nil
}
