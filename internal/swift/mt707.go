package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucidbank/lcbridge/internal/models"
)

// mt707TagOrder is the amendment notice wire contract.
var mt707TagOrder = []string{"20", "21", "26E", "30", "79"}

// GenerateMT707 renders the amendment notice for one approved amendment.
func GenerateMT707(app *models.LCApplication, amendment *models.Amendment, at time.Time) string {
	values := map[string]string{
		"20":  lcNumber(app),
		"21":  lcNumber(app),
		"26E": fmt.Sprintf("%d", amendment.Sequence),
		"30":  at.UTC().Format("20060102"),
		"79":  amendmentNarrative(amendment),
	}

	fields := make([]string, 0, len(mt707TagOrder))
	for _, name := range mt707TagOrder {
		fields = append(fields, tag(name, values[name]))
	}

	return assemble(senderBIC(app), receiverBIC(app), "707", fields, at)
}

func amendmentNarrative(amendment *models.Amendment) string {
	lines := []string{
		fmt.Sprintf("AMENDMENT NO. %d TO DOCUMENTARY CREDIT", amendment.Sequence),
		fmt.Sprintf("FIELD: %s", strings.ToUpper(amendment.Field)),
		fmt.Sprintf("PREVIOUSLY: %s", strings.ToUpper(orDefault(amendment.OldValue, "NOT STATED"))),
		fmt.Sprintf("AMENDED TO: %s", strings.ToUpper(orDefault(amendment.NewValue, "NOT STATED"))),
	}
	if reason := strings.TrimSpace(amendment.Reason); reason != "" {
		lines = append(lines, "REASON: "+strings.ToUpper(reason))
	}
	lines = append(lines, "ALL OTHER TERMS AND CONDITIONS REMAIN UNCHANGED")
	return strings.Join(lines, "\n")
}
