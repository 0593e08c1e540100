package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Report is the structured view of a model response that followed the
// requested format. Parsing is best effort: a response the parser cannot
// make sense of yields a nil Report, never an error.
type Report struct {
	Items         []ReportItem
	TotalCalories int
	Insights      []string
	Tips          []string
}

type ReportItem struct {
	Name     string
	Calories int
}

var kcalRe = regexp.MustCompile(`(\d+)\s*kcal`)

// ParseReport extracts items, total calories, insights, and tips from the
// templated response. Section headers are matched loosely because models
// decorate them with emoji and markdown.
func ParseReport(raw string) *Report {
	report := &Report{}
	section := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "identified items"):
			section = "items"
			continue
		case strings.Contains(lower, "total calories"):
			if m := kcalRe.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					report.TotalCalories = n
				}
			}
			section = ""
			continue
		case strings.Contains(lower, "nutritional insights"):
			section = "insights"
			continue
		case strings.Contains(lower, "health tips"):
			section = "tips"
			continue
		}

		text := trimBullet(line)
		if text == "" {
			continue
		}

		switch section {
		case "items":
			if item, ok := parseItem(text); ok {
				report.Items = append(report.Items, item)
			}
		case "insights":
			report.Insights = append(report.Insights, text)
		case "tips":
			report.Tips = append(report.Tips, text)
		}
	}

	if len(report.Items) == 0 && report.TotalCalories == 0 &&
		len(report.Insights) == 0 && len(report.Tips) == 0 {
		return nil
	}
	return report
}

// parseItem splits "Grilled Chicken - 350 kcal" into name and calories. Lines
// in the items section without a kcal figure are skipped.
func parseItem(text string) (ReportItem, bool) {
	loc := kcalRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return ReportItem{}, false
	}

	calories, err := strconv.Atoi(text[loc[2]:loc[3]])
	if err != nil {
		return ReportItem{}, false
	}

	name := strings.TrimSpace(text[:loc[0]])
	name = strings.TrimRight(name, " -–:|")
	name = strings.Trim(name, "*")
	if name == "" {
		return ReportItem{}, false
	}

	return ReportItem{Name: name, Calories: calories}, true
}

// trimBullet strips a leading list marker ("-", "*", "•") and surrounding
// whitespace.
func trimBullet(line string) string {
	line = strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}
	if line == "-" || line == "*" || line == "•" {
		return ""
	}
	return line
}
