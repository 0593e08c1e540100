// Package prompt composes the instruction text sent to the vision model.
package prompt

import "strings"

// BaseTemplate is the fixed nutrition analysis prompt. It pins the response
// shape so the report parser has a stable format to work against.
const BaseTemplate = `As a professional nutritionist, analyze the food items in the image and provide:
1. A detailed list of identified food items with their estimated calories
2. Total caloric content
3. Basic nutritional insights and health recommendations

Format the response as:

Identified Items:
- [Food Item] - [Calories] kcal
- [Food Item] - [Calories] kcal

Total Calories: [Sum] kcal

Nutritional Insights:
- [Insight 1]
- [Insight 2]

Health Tips:
- [Recommendation 1]
- [Recommendation 2]`

// instructionDelimiter separates the fixed template from user instructions.
const instructionDelimiter = "\n\nAdditional instructions from the user:\n"

// Compose returns the full prompt for one analysis. The base template always
// comes first; a non-empty user instruction is appended after the delimiter,
// never replacing the template. Pure function.
func Compose(instructions string) string {
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		return BaseTemplate
	}
	return BaseTemplate + instructionDelimiter + instructions
}
