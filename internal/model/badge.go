package model

// Severity is the color bucket a badge is rendered with.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityYellow Severity = "yellow"
	SeverityBlue   Severity = "blue"
	SeverityGray   Severity = "gray"
)

// Badge is one explanatory tag rendered alongside the verdict.
type Badge struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}
