package notify

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	TemplateROIReport = "roi_report"
	TemplateSalesLead = "sales_lead"
	TemplateWelcome   = "welcome"
)

type Template struct {
	Subject string
	Body    string
}

// Templates are rendered with Render. Money values are passed preformatted
// (see Money) so the templates stay free of formatting logic.
var Templates = map[string]Template{
	TemplateROIReport: {
		Subject: "Your AI Implementation ROI Analysis - {{companyName}}",
		Body: `Thank you for using our ROI Calculator!

Here's a summary of your AI implementation analysis:

KEY METRICS:
- Annual Potential Savings: {{potentialSavings}}
- Efficiency Gain: {{efficiencyGain}}%
- Payback Period: {{paybackPeriod}} months
- 3-Year ROI: {{threeYearRoi}}%
- Implementation Cost: {{implementationCost}}

DETAILED BREAKDOWN:
- Time Savings: {{timeSavings}} hours annually
- Direct Cost Reduction: {{costReduction}}
- Error Reduction Savings: {{errorReductionSavings}}
- Productivity Increase: {{productivityIncrease}}%
- Monthly Savings: {{monthlySavings}}

Ready to take the next step? Our AI implementation experts are standing by to:
- Provide a detailed technical assessment
- Create a custom implementation roadmap
- Discuss your specific use case in detail

Schedule a free consultation: {{siteUrl}}/contact

Best regards,
The {{companyName}} Team

P.S. This analysis is based on industry averages and your inputs. Actual results may vary based on your specific implementation and requirements.
`,
	},
	TemplateSalesLead: {
		Subject: "New {{qualification}} Lead: {{firstName}} {{lastName}}",
		Body: `New contact form submission received:

Name: {{firstName}} {{lastName}}
Email: {{email}}
Company: {{company}}
Job Title: {{jobTitle}}
Phone: {{phone}}

Company Details:
- Size: {{companySize}}
- Industry: {{industry}}
- Budget: {{budgetRange}}
- Timeline: {{projectTimeline}}

Project Information:
- Description: {{projectDescription}}
- AI Experience: {{aiExperience}}
- Challenges: {{specificChallenges}}

Lead Scoring:
- Score: {{leadScore}}/100
- Qualified: {{qualifiedAnswer}}
- Form Step: {{formStep}}/5

Submission ID: {{submissionId}}
Created: {{createdAt}}
`,
	},
	TemplateWelcome: {
		Subject: "Welcome to {{companyName}} - Your AI Transformation Starts Here",
		Body: `Hi {{firstName}},

Thank you for your interest in {{companyName}}!

We've received your information and our AI implementation specialists will review your requirements. Here's what happens next:

1. Initial Review (24 hours)
   Our team will assess your project requirements and timeline

2. Strategy Call (2-3 business days)
   A 30-minute consultation to discuss your specific needs

3. Custom Proposal (1 week)
   Detailed implementation plan with timeline and investment

4. 30-Day Implementation
   Rapid deployment of your AI solution

While you wait, feel free to:
- Check out our case studies: {{siteUrl}}/case-studies
- Use our ROI Calculator: {{siteUrl}}/roi-calculator
- Read our AI implementation guide: {{siteUrl}}/resources

Questions? Simply reply to this email.

Looking forward to transforming your business with AI!

Best regards,
The {{companyName}} Team
`,
	},
}

// Render replaces {{key}} placeholders with values from data. Placeholders
// without a value are removed.
func Render(tmpl string, data map[string]interface{}) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			break
		}
		b.WriteString(rest[:start])
		key := strings.TrimSpace(rest[start+2 : start+end])
		b.WriteString(stringify(data[key]))
		rest = rest[start+end+2:]
	}
	b.WriteString(rest)
	return b.String()
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

var printer = message.NewPrinter(language.English)

// Money formats v as US dollars with thousands separators ($12,345.60).
func Money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// OrNotProvided substitutes the sales template's placeholder for empty fields.
func OrNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
