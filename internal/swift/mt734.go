package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
)

// mt734TagOrder is the refusal notice wire contract.
var mt734TagOrder = []string{"20", "21", "32A", "77J", "77B", "72"}

// GenerateMT734 renders an advice of refusal citing every discrepancy the
// examiner found. Findings come straight from the latest examination run.
func GenerateMT734(app *models.LCApplication, p *models.Presentation, findings []engine.Finding, at time.Time) string {
	values := map[string]string{
		"20":  "RFL" + SanitizeReference(lcNumber(app)),
		"21":  lcNumber(app),
		"32A": at.UTC().Format("060102") + strings.ToUpper(orDefault(app.Currency, "INR")) + formatAmount(p.InvoiceAmount),
		"77J": discrepancyNarrative(findings),
		"77B": "/HOLD/ DOCUMENTS HELD AT YOUR DISPOSAL PENDING YOUR FURTHER INSTRUCTIONS",
		"72":  "WE REFUSE THE DOCUMENTS PER UCP 600 ARTICLE 16",
	}

	fields := make([]string, 0, len(mt734TagOrder))
	for _, name := range mt734TagOrder {
		fields = append(fields, tag(name, values[name]))
	}

	return assemble(senderBIC(app), receiverBIC(app), "734", fields, at)
}

func discrepancyNarrative(findings []engine.Finding) string {
	if len(findings) == 0 {
		return "NO DISCREPANCIES RECORDED"
	}
	lines := make([]string, 0, len(findings))
	for i, finding := range findings {
		lines = append(lines, fmt.Sprintf("%d. (%s) %s", i+1, finding.Severity, strings.ToUpper(finding.Description)))
	}
	return strings.Join(lines, "\n")
}
