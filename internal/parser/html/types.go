package html

// StyleRegion is the raw text of a <style> element found in an HTML document
type StyleRegion struct {
	Content string
	// StartByte and EndByte delimit Content in the HTML source
	StartByte uint
	EndByte   uint
	// StartLine is the 0-indexed line where the region begins
	StartLine uint
	// StartCol is the 0-indexed byte column where the region begins
	StartCol uint
}
