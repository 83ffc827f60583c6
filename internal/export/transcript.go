package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/elliot-ia/elliot/internal/chat"
)

// ErrNothingToExport is returned for a transcript with only the welcome turn.
var ErrNothingToExport = errors.New("export: no conversation to export")

const (
	userName  = "Você"
	separator = "--------------------------------------------------"
)

func senderName(turn chat.Turn) string {
	if turn.Sender == chat.SenderUser {
		return userName
	}
	return chat.AssistantName
}

// senderLabel is the sender name with its avatar, used by the text formats.
func senderLabel(turn chat.Turn) string {
	if turn.Sender == chat.SenderUser {
		return "👤 " + senderName(turn)
	}
	return "🤖 " + senderName(turn)
}

// hardBreaks turns every line break of a message into a markdown hard break
// so list lines stay on their own line.
func hardBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", "  \n")
}

// exportedTurns drops the welcome turn, which is not part of the conversation.
func exportedTurns(turns []chat.Turn) []chat.Turn {
	result := make([]chat.Turn, 0, len(turns))
	for _, turn := range turns {
		if turn.Welcome {
			continue
		}
		result = append(result, turn)
	}
	return result
}

// WriteTranscript writes turns to w in one of the text formats: txt, json or md.
func WriteTranscript(w io.Writer, turns []chat.Turn, format Format) error {
	turns = exportedTurns(turns)
	switch format {
	case FormatText:
		blocks := make([]string, 0, len(turns))
		for _, turn := range turns {
			blocks = append(blocks, fmt.Sprintf("%s [%s]:\n%s\n%s\n", senderLabel(turn), turn.TimeLabel, turn.Text, separator))
		}
		if _, err := io.WriteString(w, strings.Join(blocks, "\n")); err != nil {
			return fmt.Errorf("io.WriteString > %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(turns); err != nil {
			return fmt.Errorf("json.Encode > %w", err)
		}
		return nil
	case FormatMarkdown:
		var sb strings.Builder
		sb.WriteString("# Conversa com " + chat.AssistantName + "\n\n")
		for _, turn := range turns {
			fmt.Fprintf(&sb, "### %s [%s]\n\n%s\n\n---\n\n", senderLabel(turn), turn.TimeLabel, hardBreaks(turn.Text))
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("io.WriteString > %w", err)
		}
		return nil
	default:
		return fmt.Errorf("format %s cannot be written to a stream", format)
	}
}

// TranscriptFileName is elliot-chat-YYYY-MM-DD with the extension of format.
func TranscriptFileName(format Format, now time.Time) string {
	return fmt.Sprintf("elliot-chat-%s.%s", now.Format(time.DateOnly), format)
}

// WriteTranscriptFile writes turns under dir and returns the file path.
func WriteTranscriptFile(dir string, turns []chat.Turn, format Format, now time.Time) (string, error) {
	if len(exportedTurns(turns)) == 0 {
		return "", ErrNothingToExport
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, TranscriptFileName(format, now))

	switch format {
	case FormatPDF:
		var md bytes.Buffer
		if err := WriteTranscript(&md, turns, FormatMarkdown); err != nil {
			return "", err
		}
		if err := renderPDF(path, md.Bytes()); err != nil {
			return "", err
		}
	case FormatXLSX:
		if err := writeTranscriptXLSX(path, exportedTurns(turns)); err != nil {
			return "", err
		}
	default:
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("os.Create(%s) > %w", path, err)
		}
		if err := WriteTranscript(f, turns, format); err != nil {
			_ = f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("f.Close() > %w", err)
		}
	}
	return path, nil
}

// renderPDF draws the markdown with the core PDF fonts, which only cover
// Windows-1252.
func renderPDF(path string, markdown []byte) error {
	opts := []mdtopdf.RenderOption{mdtopdf.WithUnicodeTranslator("cp1252")}
	renderer := mdtopdf.NewPdfRenderer("P", "A4", path, "", opts, mdtopdf.LIGHT)
	if err := renderer.Process(pdfText(markdown)); err != nil {
		return fmt.Errorf("renderer.Process() > %w", err)
	}
	return nil
}

// pdfText removes the characters Windows-1252 cannot encode, such as emojis
// and Hebrew letters, with the space after them and the parentheses they
// leave empty.
func pdfText(markdown []byte) []byte {
	var sb strings.Builder
	dropped := false
	for _, r := range string(markdown) {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			dropped = true
			continue
		}
		if dropped && r == ' ' {
			dropped = false
			continue
		}
		dropped = false
		sb.WriteRune(r)
	}
	return []byte(strings.ReplaceAll(sb.String(), " ()", ""))
}

func writeTranscriptXLSX(path string, turns []chat.Turn) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Transcript"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("f.SetSheetName > %w", err)
	}
	rows := make([][]any, 0, len(turns))
	for _, turn := range turns {
		rows = append(rows, []any{senderName(turn), turn.Time.Format(time.DateTime), turn.Text})
	}
	if err := writeSheet(f, sheet, []any{"Sender", "Time", "Text"}, rows); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("f.SaveAs(%s) > %w", path, err)
	}
	return nil
}

// writeSheet streams a header row and rows into an existing sheet.
func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("f.NewStreamWriter(%s) > %w", sheet, err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("sw.SetRow(A1) > %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName > %w", err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("sw.SetRow(%s) > %w", cell, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("sw.Flush() > %w", err)
	}
	return nil
}
