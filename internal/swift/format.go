// Package swift renders SWIFT FIN message text (MT700, MT707, MT734) from
// application state. Output is draft text only; nothing here transmits.
package swift

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lucidbank/lcbridge/internal/models"
)

// lineWidth is the SWIFT FIN body line limit.
const lineWidth = 65

const defaultReceiverBIC = "AAAAGB2LXXX"

// wrap breaks text at the FIN line width, preserving existing newlines.
func wrap(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for len(line) > lineWidth {
			cut := strings.LastIndex(line[:lineWidth+1], " ")
			if cut <= 0 {
				cut = lineWidth
			}
			out = append(out, strings.TrimRight(line[:cut], " "))
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// formatAmount renders a SWIFT amount with two decimals.
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

var unsafeRefChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeReference reduces an LC reference to the characters allowed in
// artifact file names.
func SanitizeReference(reference string) string {
	return unsafeRefChars.ReplaceAllString(reference, "_")
}

// DraftFileName builds the deterministic outbox name for a stored draft,
// e.g. MT700_LC-2026-00042_20260115T093000.txt.
func DraftFileName(messageType, reference string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.txt", messageType, SanitizeReference(reference), at.UTC().Format("20060102T150405"))
}

// receiverBIC picks the counterparty address: advising bank first, then
// the beneficiary's bank, then the placeholder test BIC.
func receiverBIC(app *models.LCApplication) string {
	if bic := strings.TrimSpace(app.AdvisingBankBIC); bic != "" {
		return bic
	}
	if bic := strings.TrimSpace(app.BeneficiaryBankBIC); bic != "" {
		return bic
	}
	return defaultReceiverBIC
}

func senderBIC(app *models.LCApplication) string {
	if bic := strings.TrimSpace(app.IssuingBankBIC); bic != "" {
		return bic
	}
	return "LUCDINBBXXX"
}

// finHeader builds the simplified FIN blocks 1-3.
func finHeader(sender, receiver, messageType string, at time.Time) string {
	stamp := at.UTC().Format("0601021504")
	return fmt.Sprintf("{1:F01%sXXXX0000000000}{2:I%s%sN}{3:{108:%s}}",
		sender, messageType, receiver, stamp)
}

// finTrailer builds block 5 with a placeholder checksum.
func finTrailer() string {
	return "{5:{CHK:000000000000}}"
}

// assemble wraps the ordered tag fields in FIN framing: header, text block
// 4 terminated by a hyphen, trailer.
func assemble(sender, receiver, messageType string, fields []string, at time.Time) string {
	body := strings.Join(fields, "\n")
	return fmt.Sprintf("%s\n{4:\n%s\n-}\n%s", finHeader(sender, receiver, messageType, at), body, finTrailer())
}

// tag renders one numbered field with its wrapped content.
func tag(name, content string) string {
	return fmt.Sprintf(":%s:\n%s", name, wrap(content))
}

// partyBlock formats an applicant/beneficiary block: optional account
// line, name, address lines, city/country.
func partyBlock(name, account, partyName, address, city, country string) string {
	lines := []string{fmt.Sprintf(":%s:", name)}
	if strings.TrimSpace(account) != "" {
		lines = append(lines, "//"+strings.TrimSpace(account))
	}
	lines = append(lines, strings.ToUpper(partyName))
	for _, addrLine := range strings.Split(address, "\n") {
		if trimmed := strings.TrimSpace(addrLine); trimmed != "" {
			lines = append(lines, strings.ToUpper(trimmed))
		}
	}
	place := strings.ToUpper(strings.TrimSpace(city))
	if c := strings.ToUpper(strings.TrimSpace(country)); c != "" {
		if place != "" {
			place += "/" + c
		} else {
			place = c
		}
	}
	if place != "" {
		lines = append(lines, place)
	}
	return wrap(strings.Join(lines, "\n"))
}

func yesNo(allowed bool) string {
	if allowed {
		return "ALLOWED"
	}
	return "NOT ALLOWED"
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
