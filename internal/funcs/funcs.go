package funcs

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

var TemplateFuncs = template.FuncMap{
	"now":         func() time.Time { return time.Now() },
	"formatTime":  formatTime,
	"formatMoney": formatMoney,
	"upper":       strings.ToUpper,
	"lower":       strings.ToLower,
}

func formatTime(format string, t time.Time) string {
	return t.Format(format)
}

func formatMoney(currency string, amount float64) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}
