package model

import (
	"errors"
	"fmt"
)

// Panel is a top-level category. Folder trees never cross panels.
type Panel string

const (
	PanelCertification     Panel = "certification"
	PanelHeader            Panel = "entete"
	PanelEmployeeInterface Panel = "interface_emp"
	PanelOther             Panel = "autre"
)

// DefaultPanel is used for folders created before panels existed.
const DefaultPanel = PanelEmployeeInterface

var ErrUnknownPanel = errors.New("unknown panel")

// PanelInfo holds display metadata for a panel
type PanelInfo struct {
	Name  string
	Icon  string
	Color string // Hex color used by front ends
}

// Panels returns every panel in display order
func Panels() []Panel {
	return []Panel{PanelCertification, PanelHeader, PanelEmployeeInterface, PanelOther}
}

func ParsePanel(s string) (Panel, error) {
	p := Panel(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPanel, s)
	}
	return p, nil
}

func (p Panel) Valid() bool {
	switch p {
	case PanelCertification, PanelHeader, PanelEmployeeInterface, PanelOther:
		return true
	}
	return false
}

func (p Panel) Info() PanelInfo {
	switch p {
	case PanelCertification:
		return PanelInfo{Name: "Certification", Icon: "📜", Color: "#28a745"}
	case PanelHeader:
		return PanelInfo{Name: "En-tête", Icon: "📋", Color: "#1f538d"}
	case PanelEmployeeInterface:
		return PanelInfo{Name: "Interface Employés", Icon: "👥", Color: "#17a2b8"}
	case PanelOther:
		return PanelInfo{Name: "Autre", Icon: "📦", Color: "#6c757d"}
	}
	panic(fmt.Sprintf("panel %q has no display info", string(p)))
}

func (p Panel) String() string {
	return string(p)
}
