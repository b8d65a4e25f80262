package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
)

// mt700TagOrder is the wire contract: the issued message always carries
// exactly these tags, in exactly this order.
var mt700TagOrder = []string{
	"27", "40A", "20", "31C", "40E", "31D", "50", "59", "32B", "39A",
	"41A", "42C", "42A", "43P", "43T", "44E", "44F", "44C", "44B",
	"45A", "46A", "47A", "71B", "48", "49", "53A", "78", "72",
}

// MT700TagOrder returns a copy of the fixed tag sequence.
func MT700TagOrder() []string {
	order := make([]string, len(mt700TagOrder))
	copy(order, mt700TagOrder)
	return order
}

// GenerateMT700 renders the issuance message for an application. The
// output is deterministic apart from the header timestamp, which callers
// control.
func GenerateMT700(app *models.LCApplication, at time.Time) string {
	lcType := engine.ParseLCType(app.LCType)

	values := map[string]string{
		"27":  "1/1",
		"40A": formOfCredit(lcType),
		"20":  lcNumber(app),
		"31C": engine.FormatSwiftDate(issueDate(app, at)),
		"40E": "UCP LATEST VERSION",
		"31D": engine.FormatSwiftDate(app.ExpiryDate) + strings.ToUpper(orDefault(app.ExpiryPlace, "INDIA")),
		"32B": strings.ToUpper(orDefault(app.Currency, "INR")) + formatAmount(app.Amount),
		"39A": tolerance(app.TolerancePct),
		"41A": availability(app, lcType),
		"42C": draftsAt(app, lcType),
		"42A": strings.ToUpper(orDefault(app.IssuingBank, "ISSUING BANK")),
		"43P": yesNo(app.PartialShipment),
		"43T": yesNo(app.Transshipment),
		"44E": strings.ToUpper(orDefault(app.PortOfLoading, "ANY PORT")),
		"44F": strings.ToUpper(orDefault(app.PortOfDischarge, "ANY PORT")),
		"44C": engine.FormatSwiftDate(app.LatestShipmentDate),
		"44B": finalDestination(app),
		"45A": goodsBlock(app),
		"46A": documentsBlock(app),
		"47A": additionalConditions(app),
		"71B": "ALL BANKING CHARGES OUTSIDE INDIA ARE FOR BENEFICIARY'S ACCOUNT",
		"48":  "21/DAYS FROM DATE OF SHIPMENT WITHIN CREDIT VALIDITY",
		"49":  confirmation(app),
		"53A": senderBIC(app),
		"78":  "UPON RECEIPT OF CREDIT-CONFORM DOCUMENTS WE SHALL REMIT PROCEEDS AS INSTRUCTED BY THE PRESENTING BANK",
		"72":  "THIS CREDIT IS SUBJECT TO UCP 600 (2007 REVISION)",
	}

	fields := make([]string, 0, len(mt700TagOrder))
	for _, name := range mt700TagOrder {
		switch name {
		case "50":
			fields = append(fields, partyBlock("50", app.ApplicantAccount,
				app.ApplicantName, app.ApplicantAddress, app.ApplicantCity, app.ApplicantCountry))
		case "59":
			fields = append(fields, partyBlock("59", app.BeneficiaryIBAN,
				app.BeneficiaryName, app.BeneficiaryAddress, app.BeneficiaryCity, app.BeneficiaryCountry))
		default:
			fields = append(fields, tag(name, values[name]))
		}
	}

	return assemble(senderBIC(app), receiverBIC(app), "700", fields, at)
}

func lcNumber(app *models.LCApplication) string {
	if app.LCNumber.Valid && strings.TrimSpace(app.LCNumber.String) != "" {
		return app.LCNumber.String
	}
	return app.Reference
}

func issueDate(app *models.LCApplication, at time.Time) string {
	if strings.TrimSpace(app.IssueDate) != "" {
		return app.IssueDate
	}
	return at.UTC().Format("2006-01-02")
}

func formOfCredit(lcType engine.LCType) string {
	switch lcType {
	case engine.TypeStandby:
		return "IRREVOCABLE STANDBY"
	case engine.TypeRevolving:
		return "IRREVOCABLE REVOLVING"
	default:
		return "IRREVOCABLE"
	}
}

func tolerance(pct float64) string {
	p := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", pct), "0"), ".")
	if p == "" {
		p = "0"
	}
	return p + "/" + p
}

// availability maps the LC type to the :41A: settlement vocabulary.
func availability(app *models.LCApplication, lcType engine.LCType) string {
	bank := strings.ToUpper(orDefault(app.AdvisingBank, "ANY BANK"))
	var method string
	switch lcType {
	case engine.TypeSight, engine.TypeStandby:
		method = "BY PAYMENT"
	case engine.TypeUsance:
		method = "BY ACCEPTANCE"
	default:
		method = "BY NEGOTIATION"
	}
	return "WITH " + bank + "\n" + method
}

func draftsAt(app *models.LCApplication, lcType engine.LCType) string {
	if lcType == engine.TypeUsance {
		return strings.ToUpper(orDefault(app.PaymentTerms, "90 DAYS")) + " AFTER SIGHT"
	}
	return "SIGHT"
}

func finalDestination(app *models.LCApplication) string {
	place := strings.ToUpper(strings.TrimSpace(app.ApplicantCity))
	country := strings.ToUpper(strings.TrimSpace(app.ApplicantCountry))
	switch {
	case place != "" && country != "":
		return place + ", " + country
	case place != "":
		return place
	case country != "":
		return country
	default:
		return strings.ToUpper(orDefault(app.PortOfDischarge, "FINAL DESTINATION"))
	}
}

func goodsBlock(app *models.LCApplication) string {
	lines := []string{strings.ToUpper(orDefault(app.GoodsDescription, "AS PER PROFORMA INVOICE"))}
	if q := strings.TrimSpace(app.Quantity); q != "" {
		lines = append(lines, "QUANTITY: "+strings.ToUpper(q))
	}
	if p := strings.TrimSpace(app.UnitPrice); p != "" {
		lines = append(lines, "UNIT PRICE: "+strings.ToUpper(p))
	}
	if hs := strings.TrimSpace(app.HSCode); hs != "" {
		lines = append(lines, "HS CODE: "+strings.ToUpper(hs))
	}
	if origin := strings.TrimSpace(app.CountryOfOrigin); origin != "" {
		lines = append(lines, "COUNTRY OF ORIGIN: "+strings.ToUpper(origin))
	}
	if inc := strings.TrimSpace(app.Incoterms); inc != "" {
		lines = append(lines, "TRADE TERM: "+strings.ToUpper(inc))
	}
	return strings.Join(lines, "\n")
}

func documentsBlock(app *models.LCApplication) string {
	if len(app.RequiredDocuments) == 0 && strings.TrimSpace(app.AdditionalDocuments) == "" {
		return "DOCUMENTS AS PER CREDIT APPLICATION"
	}
	var lines []string
	n := 0
	for _, doc := range app.RequiredDocuments {
		if trimmed := strings.TrimSpace(doc); trimmed != "" {
			n++
			lines = append(lines, fmt.Sprintf("+%d. %s", n, strings.ToUpper(trimmed)))
		}
	}
	if extra := strings.TrimSpace(app.AdditionalDocuments); extra != "" {
		n++
		lines = append(lines, fmt.Sprintf("+%d. %s", n, strings.ToUpper(extra)))
	}
	return strings.Join(lines, "\n")
}

func additionalConditions(app *models.LCApplication) string {
	if inst := strings.TrimSpace(app.SpecialInstructions); inst != "" {
		return strings.ToUpper(inst)
	}
	return "DOCUMENTS MUST BE ISSUED IN ENGLISH"
}

func confirmation(app *models.LCApplication) string {
	if strings.TrimSpace(app.ConfirmingBank) != "" {
		return "CONFIRM"
	}
	return "WITHOUT"
}
