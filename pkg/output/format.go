// Package output provides utilities for formatting and displaying batch results.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/realestate-calc/internal/batch"
	"github.com/iwvelando/realestate-calc/pkg/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type kind int

const (
	kindMoney kind = iota
	kindPercent
	kindRatio
	kindText
)

// record is one reported figure of one calculation.
type record struct {
	section string
	name    string
	metric  string
	kind    kind
	value   float64
	text    string
	exact   string
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results *batch.Results) {
	WritePretty(os.Stdout, results)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results *batch.Results) {
	WriteCSV(os.Stdout, results)
}

// CsvString returns the CSV rendering as a string.
func CsvString(results *batch.Results) string {
	var buf bytes.Buffer
	WriteCSV(&buf, results)
	return buf.String()
}

// WritePretty writes one table per calculation to w.
func WritePretty(w io.Writer, results *batch.Results) {
	if results == nil {
		return
	}
	p := message.NewPrinter(language.English)
	records := flatten(results)

	for i, rec := range records {
		if i == 0 || rec.section != records[i-1].section || rec.name != records[i-1].name {
			if i > 0 {
				_, _ = fmt.Fprintf(w, "\n")
			}
			_, _ = fmt.Fprintf(w, "--- %s: %s ---\n", rec.section, rec.name)
		}
		if rec.kind == kindRatio {
			_, _ = p.Fprintf(w, "%-34s | %.2f\n", rec.metric, rec.value)
			continue
		}
		_, _ = p.Fprintf(w, "%-34s | %s\n", rec.metric, rec.text)
	}

	for _, warning := range results.Warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

// WriteCSV writes one row per reported figure to w.
func WriteCSV(w io.Writer, results *batch.Results) {
	_, _ = fmt.Fprintf(w, `"section","name","metric","value"`+"\n")
	for _, rec := range flatten(results) {
		value := rec.text
		switch {
		case rec.exact != "":
			value = rec.exact
		case rec.kind != kindText:
			value = fmt.Sprintf("%.2f", rec.value)
		}
		_, _ = fmt.Fprintf(w, "%s,%s,%s,%s\n", quote(rec.section), quote(rec.name), quote(rec.metric), quote(value))
	}
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func flatten(results *batch.Results) []record {
	if results == nil {
		return nil
	}
	var records []record
	add := func(section, name, metric string, k kind, value float64) {
		rec := record{section: section, name: name, metric: metric, kind: k, value: value}
		switch k {
		case kindMoney:
			rec.text = format.Currency(value)
		case kindPercent:
			rec.text = format.Percent(value)
		}
		records = append(records, rec)
	}
	addText := func(section, name, metric string, k kind, text string) {
		records = append(records, record{section: section, name: name, metric: metric, kind: k, text: text})
	}
	addDecimal := func(section, name, metric string, amount decimal.Decimal) {
		records = append(records, record{section: section, name: name, metric: metric, kind: kindMoney,
			text: format.DecimalCurrency(amount), exact: amount.StringFixed(2)})
	}

	for _, m := range results.Mortgages {
		const section = "Mortgage"
		add(section, m.Name, "Principal", kindMoney, m.Principal)
		add(section, m.Name, "Monthly payment", kindMoney, m.MonthlyPayment)
		add(section, m.Name, "Total interest", kindMoney, m.TotalInterest)
		add(section, m.Name, "Total amount", kindMoney, m.TotalAmount)
		for _, payment := range m.Schedule {
			add(section, m.Name, fmt.Sprintf("Balance after month %d", payment.Month), kindMoney, payment.RemainingPrincipal)
		}
	}

	for _, pq := range results.Prequalifications {
		const section = "Prequalification"
		for _, program := range pq.Programs {
			prefix := program.Program + " "
			addText(section, pq.Name, prefix+"qualifies", kindText, fmt.Sprintf("%t", program.Qualifies))
			add(section, pq.Name, prefix+"max home price", kindMoney, program.MaxAffordableHomePrice)
			add(section, pq.Name, prefix+"max loan", kindMoney, program.MaxLoanAmount)
			add(section, pq.Name, prefix+"monthly payment", kindMoney, program.MonthlyHousingPayment)
			add(section, pq.Name, prefix+"housing ratio", kindPercent, program.HousingRatioUsed)
			add(section, pq.Name, prefix+"total debt ratio", kindPercent, program.TotalRatioUsed)
			add(section, pq.Name, prefix+"cash needed", kindMoney, program.CashToClose.TotalCashNeeded)
			add(section, pq.Name, prefix+"cash shortfall", kindMoney, program.CashToClose.Shortfall)
		}
	}

	for _, inv := range results.Investments {
		const section = "Investment"
		a := inv.Analysis
		add(section, inv.Name, "NOI (current)", kindMoney, a.NOI.Current)
		add(section, inv.Name, "NOI (projected)", kindMoney, a.NOI.Projected)
		add(section, inv.Name, "Cash flow (projected)", kindMoney, a.AnnualCashFlow.Projected)
		add(section, inv.Name, "Cap rate (current)", kindPercent, a.CapRate.Current)
		add(section, inv.Name, "Cap rate (projected)", kindPercent, a.CapRate.Projected)
		add(section, inv.Name, "Annual debt service", kindMoney, a.AnnualDebtService)
		add(section, inv.Name, "Renovation cost", kindMoney, a.RenovationCost)
		add(section, inv.Name, "Total cash invested", kindMoney, a.TotalCashInvested)
		add(section, inv.Name, "Cash-on-cash return", kindPercent, a.CashOnCashReturn)
		add(section, inv.Name, "DSCR", kindRatio, a.DSCR)
		add(section, inv.Name, "Value gain", kindMoney, a.ValueGain)
		for _, projection := range a.Projections {
			add(section, inv.Name, fmt.Sprintf("Year %d equity", projection.Year), kindMoney, projection.Equity)
			add(section, inv.Name, fmt.Sprintf("Year %d ROI", projection.Year), kindPercent, projection.ROI)
		}
		if inv.Target != nil {
			add(section, inv.Name, "Recommended price", kindMoney, inv.Target.RecommendedPrice)
			add(section, inv.Name, "Max offer", kindMoney, inv.Target.MaxOfferPrice)
		}
	}

	for _, ns := range results.NetSheets {
		const section = "Net sheet"
		addText(section, ns.Name, "Jurisdiction", kindText, ns.Jurisdiction)
		addDecimal(section, ns.Name, "Sale price", ns.GrossSalePrice)
		for _, item := range ns.BreakdownItems {
			addDecimal(section, ns.Name, item.Description, item.Amount)
		}
		addDecimal(section, ns.Name, "Total deductions", ns.TotalDeductions)
		addDecimal(section, ns.Name, "Net proceeds", ns.NetProceeds)
	}

	for _, target := range results.Targets {
		const section = "Target price"
		add(section, target.Name, "Cap rate based price", kindMoney, target.CapRateBasedPrice)
		add(section, target.Name, "Cash-on-cash based price", kindMoney, target.CashOnCashBasedPrice)
		add(section, target.Name, "Required NOI", kindMoney, target.RequiredNOI)
		add(section, target.Name, "Recommended price", kindMoney, target.RecommendedPrice)
		add(section, target.Name, "Max offer", kindMoney, target.MaxOfferPrice)
	}

	return records
}
