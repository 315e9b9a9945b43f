package service

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const documentHead = `<!DOCTYPE html>
<html lang="it"><head><meta charset="utf-8"><title>Stampa Ordine</title></head><body>
`

const documentTail = `</body></html>
`

func wrapDocument(fragment string) []byte {
	return []byte(documentHead + fragment + documentTail)
}

// SpoolPrinter drops each job as a standalone HTML file into Dir, where a
// print daemon or a person picks it up.
type SpoolPrinter struct {
	Dir string
	now func() time.Time
}

func NewSpoolPrinter(dir string) *SpoolPrinter {
	return &SpoolPrinter{Dir: dir, now: time.Now}
}

func (p *SpoolPrinter) Print(document string) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("spool dir: %w", err)
	}
	name := filepath.Join(p.Dir, fmt.Sprintf("order-%s.html", p.now().UTC().Format("20060102T150405.000000000")))
	if err := os.WriteFile(name, wrapDocument(document), 0o644); err != nil {
		return fmt.Errorf("spool job: %w", err)
	}
	return nil
}

// CommandPrinter pipes each job into an external command such as "lp".
type CommandPrinter struct {
	Name string
	Args []string
}

// NewCommandPrinter splits line on whitespace into command and arguments.
func NewCommandPrinter(line string) (*CommandPrinter, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("print command is empty")
	}
	return &CommandPrinter{Name: parts[0], Args: parts[1:]}, nil
}

func (p *CommandPrinter) Print(document string) error {
	cmd := exec.Command(p.Name, p.Args...)
	cmd.Stdin = bytes.NewReader(wrapDocument(document))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.Name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// NopPrinter accepts every job and discards it.
type NopPrinter struct{}

func (NopPrinter) Print(string) error { return nil }
