// Package parser recovers structured recipe fields from generated Markdown.
//
// The extractor is coupled to the heading vocabulary the generation prompt
// asks for. Output that uses other headings yields empty sections and the
// default times; there is no fallback.
package parser

import "strings"

// Defaults used when the body does not provide a value.
const (
	DefaultName     = "美味食谱"
	DefaultPrepTime = "15"
	DefaultCookTime = "30"
)

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionSteps
	sectionTips
	sectionTime
)

// Keywords are matched as prefixes of the heading text, in this order.
var headingKeywords = []struct {
	keyword string
	section section
}{
	{"食材", sectionIngredients},
	{"步骤", sectionSteps},
	{"准备", sectionSteps},
	{"烹饪技巧", sectionTips},
	{"预计", sectionTime},
}

const (
	prepTimeLabel = "准备时间"
	cookTimeLabel = "烹饪时间"
)

// Sections holds the structured fields of a recipe body.
type Sections struct {
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tips        []string `json:"tips"`
	PrepTime    string   `json:"prepTime"`
	CookTime    string   `json:"cookTime"`
}

// Extract scans body line by line and collects list items under the known
// section headings.
func Extract(body string) Sections {
	out := Sections{
		Ingredients: []string{},
		Steps:       []string{},
		Tips:        []string{},
		PrepTime:    DefaultPrepTime,
		CookTime:    DefaultCookTime,
	}

	current := sectionNone
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		if next, ok := headingSection(line); ok {
			current = next
			continue
		}

		switch current {
		case sectionIngredients:
			if item, ok := bullet(line); ok {
				out.Ingredients = append(out.Ingredients, item)
			}
		case sectionSteps:
			if item, ok := step(line); ok {
				out.Steps = append(out.Steps, item)
			}
		case sectionTips:
			if item, ok := bullet(line); ok {
				out.Tips = append(out.Tips, item)
			}
		case sectionTime:
			if strings.Contains(line, prepTimeLabel) {
				if v, ok := timeValue(line); ok {
					out.PrepTime = v
				}
			}
			if strings.Contains(line, cookTimeLabel) {
				if v, ok := timeValue(line); ok {
					out.CookTime = v
				}
			}
		}
	}
	return out
}

// Name returns the text of the first "# " or "## " heading, or DefaultName.
func Name(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") {
			if name := strings.TrimSpace(strings.TrimLeft(line, "#")); name != "" {
				return name
			}
			return DefaultName
		}
	}
	return DefaultName
}

// headingSection reports whether line is a level-2/3 heading and which
// section it opens. Unknown headings close the current section.
func headingSection(line string) (section, bool) {
	if !strings.HasPrefix(line, "##") {
		return sectionNone, false
	}
	for _, prefix := range []string{"## ", "### "} {
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok {
			continue
		}
		for _, h := range headingKeywords {
			if strings.HasPrefix(rest, h.keyword) {
				return h.section, true
			}
		}
	}
	return sectionNone, true
}

func bullet(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "-")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// step accepts "- text", "1. text" and "1、text".
func step(line string) (string, bool) {
	if item, ok := bullet(line); ok {
		return item, true
	}
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return "", false
	}
	rest := line[digits:]
	for _, mark := range []string{".", "、"} {
		if after, ok := strings.CutPrefix(rest, mark); ok {
			return strings.TrimSpace(after), true
		}
	}
	return "", false
}

// timeValue returns the text after the earliest ASCII or full-width colon,
// cut at the first space.
func timeValue(line string) (string, bool) {
	idx, width := strings.Index(line, ":"), 1
	if j := strings.Index(line, "："); j >= 0 && (idx < 0 || j < idx) {
		idx, width = j, len("：")
	}
	if idx < 0 {
		return "", false
	}
	v := strings.TrimSpace(line[idx+width:])
	if sp := strings.Index(v, " "); sp >= 0 {
		v = v[:sp]
	}
	return v, true
}
