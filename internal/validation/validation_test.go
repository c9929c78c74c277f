package validation

import (
	"strings"
	"testing"
)

func TestValidateFolderName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Reports", false},
		{"unicode", "Rapports été", false},
		{"surrounding space", "  2024  ", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"max length", strings.Repeat("é", MaxFolderNameLength), false},
		{"too long", strings.Repeat("a", MaxFolderNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFolderName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFolderName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"short is accepted", "admin", false},
		{"at limit", strings.Repeat("x", MaxPasswordBytes), false},
		{"empty", "", true},
		{"over limit", strings.Repeat("x", MaxPasswordBytes+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsAllowedFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"budget.xlsx", true},
		{"old.xls", true},
		{"letter.docx", true},
		{"letter.doc", true},
		{"notes.txt", false},
		{"archive.pdf.zip", false},
		{"pdf", false},
		{".pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllowedFile(tt.name); got != tt.want {
				t.Errorf("IsAllowedFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestValidateDocumentName(t *testing.T) {
	if err := ValidateDocumentName("q1.pdf"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDocumentName("q1.txt"); err == nil {
		t.Error("expected error for .txt")
	}
	if err := ValidateDocumentName(""); err == nil {
		t.Error("expected error for empty name")
	}
}
