package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/templui/docportal/internal/model"
)

var (
	faint = lipgloss.NewStyle().Faint(true)
	bold  = lipgloss.NewStyle().Bold(true)
)

func panelLabel(p model.Panel) string {
	info := p.Info()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(info.Color)).
		Bold(true).
		Render(info.Icon + " " + info.Name)
}

func folderLine(f *model.Folder) string {
	return fmt.Sprintf("%s %s %s", faint.Render(fmt.Sprintf("#%d", f.ID)), bold.Render(f.Name), panelLabel(f.Panel))
}

func fileLine(f *model.File) string {
	return fmt.Sprintf("%s %s %s  %s  %s  %s",
		faint.Render(fmt.Sprintf("#%d", f.ID)),
		f.Icon(),
		f.Filename,
		humanize.Bytes(uint64(max(f.FileSize, 0))),
		faint.Render(humanize.Time(f.UploadedAt)),
		faint.Render(openWith(f)),
	)
}

// openWith names how the portal presents a file: PDFs in the viewer, office
// documents as downloads
func openWith(f *model.File) string {
	switch {
	case f.IsPDF():
		return "view"
	case f.IsDownloadable():
		return "download"
	}
	return "-"
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// optionalID parses a flag value where empty means unset
func optionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := parseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalPanel(s string) (*model.Panel, error) {
	if s == "" {
		return nil, nil
	}
	p, err := model.ParsePanel(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// optionalSize accepts human sizes such as "10MB" or "512 KiB"
func optionalSize(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return nil, fmt.Errorf("invalid size %q: %w", s, err)
	}
	size := int64(n)
	return &size, nil
}

// optionalDate accepts YYYY-MM-DD or RFC 3339. A bare end date covers the whole day.
func optionalDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Microsecond)
	}
	return &t, nil
}
