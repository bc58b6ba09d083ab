package analysis

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior product manager and competitive analysis expert. You return only valid, complete JSON.`

// buildPrompt renders the six-dimension analysis prompt. webContext is
// either a search context block or the search placeholder; the prompt shape
// stays the same either way.
func buildPrompt(product, webContext string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Perform a deep competitive analysis of the following product:\n\n")
	fmt.Fprintf(&sb, "**Product:** %s\n\n", product)

	if strings.TrimSpace(webContext) != "" {
		sb.WriteString(webContext)
		sb.WriteString("\n\n")
	}

	sb.WriteString(`Analyze strictly along the following dimensions. Each dimension needs detailed, professional analysis:

## 1. Model Stack (technology and model dependencies)
- Core technology stack the product is built on
- AI models or frameworks it depends on
- Maturity and scalability of the architecture
- Technical risks or critical dependencies

## 2. Scene-Fit (the niche scenario it solves)
- The concrete use cases the product targets
- How precisely it fits those scenarios
- Depth and completeness of scenario coverage
- Scenario needs that remain underserved

## 3. Data Moat (data loop and defensibility)
- How the product acquires its data
- Data quality and scale
- Whether usage feeds back into a data loop
- Strength and durability of the resulting moat

## 4. UX Friction (interaction pain points)
- Main pain points users hit
- Friction in the interaction flow
- Overall smoothness and learnability
- Interactions that need improvement

## 5. Commercial ROI (monetization assessment)
- Business model and revenue levers
- Soundness of the pricing strategy
- Willingness to pay of the target users
- Sustainability and growth potential of monetization

## 6. Strategic Advice (differentiated competition)
- Based on the above, give 1-2 concrete differentiation strategies
- Each must be actionable and create a real edge

Output format:
Return a JSON object that contains exactly these 6 keys, no more and no less:
{
    "model_stack": "detailed analysis...",
    "scene_fit": "detailed analysis...",
    "data_moat": "detailed analysis...",
    "ux_friction": "detailed analysis...",
    "commercial_roi": "detailed analysis...",
    "strategy_advice": "differentiation advice..."
}

Hard requirements:
1. The output must be valid, complete JSON with no truncation
2. Key names must match the 6 names above exactly
3. Every field must hold complete content
4. If the analysis runs long, condense it rather than truncating the JSON
5. Ground the analysis in real product understanding
6. Escape quotes inside JSON strings correctly`)

	return sb.String()
}
