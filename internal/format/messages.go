// Package format renders canonical messages and session statistics for
// the CLI.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"

	"agentrelay/internal/canon"
)

// WriteMessages writes messages to w in the requested format.
func WriteMessages(w io.Writer, msgs []*canon.Message, format string, wrap int, useColor bool) error {
	switch strings.ToLower(format) {
	case "", "text":
		return writeTranscript(w, msgs, wrap, useColor)
	case "plain":
		return writePlain(w, msgs)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(msgs)
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, msg := range msgs {
			if err := enc.Encode(msg); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writePlain(w io.Writer, msgs []*canon.Message) error {
	for _, msg := range msgs {
		line := fmt.Sprintf("%s\t%s\t%s\t%s",
			msg.CreatedAt.Format(time.RFC3339),
			msg.Role,
			msg.ID,
			escapeNewlines(msg.Summary()),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeTranscript(w io.Writer, msgs []*canon.Message, wrap int, useColor bool) error {
	for idx, msg := range msgs {
		if idx > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		label := string(msg.Role)
		if useColor {
			label = roleColor(msg.Role).Sprint(label)
		}
		if _, err := fmt.Fprintf(w, "[%s][%s]\n", msg.CreatedAt.Format(time.RFC3339), label); err != nil {
			return err
		}

		for _, line := range RenderBlockLines(msg.Content, wrap) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderBlockLines returns the printable body lines for a content
// sequence, optionally wrapped at the given column width.
func RenderBlockLines(blocks []canon.Block, wrap int) []string {
	var lines []string
	for _, block := range blocks {
		switch v := block.(type) {
		case canon.TextBlock:
			lines = append(lines, strings.Split(wrapBody(strings.TrimSpace(v.Text), wrap), "\n")...)
		case canon.ThinkingBlock:
			lines = append(lines, "[thinking] "+wrapBody(strings.TrimSpace(v.Text), wrap))
		case canon.ToolCallBlock:
			lines = append(lines, fmt.Sprintf("Tool: %s (ID: %s)", v.Name, v.ID))
			if len(v.Input) > 0 {
				lines = append(lines, "Input:")
				lines = append(lines, strings.Split(formatJSON(v.Input), "\n")...)
			}
		case canon.ToolResultBlock:
			header := fmt.Sprintf("Tool Result (ID: %s)", v.ID)
			if v.IsError {
				header += " [error]"
			}
			lines = append(lines, header)
			if v.Output != "" {
				lines = append(lines, strings.Split(v.Output, "\n")...)
			}
		}
	}
	return lines
}

func roleColor(role canon.Role) text.Color {
	if role == canon.RoleUser {
		return text.FgGreen
	}
	return text.FgCyan
}

func wrapBody(body string, width int) string {
	if width <= 0 || len(body) <= width {
		return body
	}

	words := strings.Fields(body)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)

	return strings.Join(lines, "\n")
}

func formatJSON(value any) string {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

func escapeNewlines(body string) string {
	return strings.ReplaceAll(body, "\n", "\\n")
}
