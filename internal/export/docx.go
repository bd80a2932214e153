package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/notime/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// reChapter matches a flattened chapter line "00:00 - text".
var reChapter = regexp.MustCompile(`^(\d{1,2}(?::\d{2}){1,2}(?:[,.]\d+)?) - (.+)$`)

// WriteReply saves a successful result as a styled docx file: a title, the source
// URL, the main text (chapter times in bold) and the comment digest if present.
func WriteReply(title string, res models.Result, outputPath string) error {
	if !res.OK || res.Reply == nil {
		return fmt.Errorf("export: result has no reply: %w", models.ErrInvalidInput)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addStyledRun(doc.AddParagraph(""), res.URL, false, fontSize)
	doc.AddParagraph("")

	for _, line := range strings.Split(res.Reply.Main, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		p := doc.AddParagraph("")
		if m := reChapter.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(p, m[1], true, fontSize)
			addStyledRun(p, " - "+m[2], false, fontSize)
			continue
		}
		addStyledRun(p, trimmed, false, fontSize)
	}

	if c := res.Reply.Comment; c != nil && strings.TrimSpace(*c) != "" {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Comments", true, 14)
		addStyledRun(doc.AddParagraph(""), strings.TrimSpace(*c), false, fontSize)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
