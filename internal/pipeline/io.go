package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// loadTxt reads the file as UTF-8 with undecodable bytes dropped and
// returns the non-empty, whitespace-trimmed lines.
func loadTxt(path string) ([]string, error) {
	dataBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data []string
	for _, line := range strings.Split(strings.ToValidUTF8(string(dataBytes), ""), "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			data = append(data, line)
		}
	}
	return data, nil
}

func saveTxt(data, path string) error {
	return os.WriteFile(path, []byte(data), 0666)
}

// WriteReport drops the run report next to the cleaned output.
func WriteReport(report *Report, outdir string) (string, error) {
	dataBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("%v/postfilter-report-%v.json", outdir, report.RunID)
	if err := os.WriteFile(path, dataBytes, 0666); err != nil {
		return "", err
	}
	return path, nil
}

// Summary prints run totals in one line.
func (r *Report) Summary() string {
	var dialogs, fragments, lines, errs int
	for _, f := range r.Files {
		dialogs += f.Dialogs
		fragments += f.Fragments
		lines += f.Lines
		if f.Err != "" {
			errs++
		}
	}
	return fmt.Sprintf("files:%v dialogs:%v fragments:%v lines:%v errors:%v costs:%.2f(s)",
		len(r.Files), dialogs, fragments, lines, errs, r.Elapsed)
}
