package js

// TemplateRegion is the literal text of a tagged template found in JS/TS source
type TemplateRegion struct {
	// Tag is the template tag function name ("css" or "html")
	Tag string
	// Content is the raw text between the backticks
	Content string
	// StartByte and EndByte delimit Content in the JS/TS source
	StartByte uint
	EndByte   uint
	// StartLine is the 0-indexed line where Content begins
	StartLine uint
	// StartCol is the 0-indexed byte column where Content begins
	StartCol uint
}
