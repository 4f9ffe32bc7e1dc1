package advice

import (
	"bytes"
	"fmt"
	"text/template"

	"finly/internal/domain"
)

const systemPrompt = "You are a personal finance advisor. All monetary values are in Indian Rupees (₹). " +
	"Always answer with a single JSON object and nothing else."

var funcs = template.FuncMap{
	"rupees": domain.FormatRupees,
	"day":    func(l ExpenseLine) string { return l.Date.Format("2006-01-02") },
}

var savingTipsTmpl = template.Must(template.New("tips").Funcs(funcs).Parse(
	`Provide personalized saving tips based on the user's income, expenses, financial goals and spending patterns.

Income: {{rupees .Income}}
Expenses: {{rupees .TotalExpenses}}
Financial Goals: {{if .FinancialGoals}}{{.FinancialGoals}}{{else}}not specified{{end}}
Spending Patterns: {{.SpendingPatterns}}

Give specific, actionable tips: ways to reduce expenses, increase income and allocate funds towards the goals. Use the ₹ symbol for any amount.
Respond as {"savingTips": "<tips as plain text>"}.`))

var spendingAlertsTmpl = template.Must(template.New("alerts").Funcs(funcs).Parse(
	`Analyze the expenses of user {{.UserID}} and identify unusual spending spikes in specific categories.

Expenses:
{{range .Expenses}}- Category: {{.Category}}, Amount: {{rupees .Amount}}, Date: {{day .}}
{{else}}- none
{{end}}
Only report categories with a significant, explainable spike compared to the typical spending in this data.
Respond as {"alerts": [{"category": "<category>", "spikeAmount": <number>, "message": "<message using ₹>"}]}.
If there are no spikes, respond with {"alerts": []}.`))

// BuildPrompt renders the user message for req.
func BuildPrompt(req Request) (string, error) {
	var tmpl *template.Template
	switch req.Kind {
	case KindSavingTips:
		tmpl = savingTipsTmpl
	case KindSpendingAlerts:
		tmpl = spendingAlertsTmpl
	default:
		return "", fmt.Errorf("unknown advice kind %q", req.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", req.Kind, err)
	}
	return buf.String(), nil
}
