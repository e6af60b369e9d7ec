package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/pdfimport"
	md "github.com/nao1215/markdown"
)

// ResultMarkdown renders the items and the diagnostics of one document.
func ResultMarkdown(r pdfimport.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.Document)
	doc.PlainText(fmt.Sprintf("%d transactions, %d discarded blocks.", len(r.Items), len(r.Diagnostics)))

	if len(r.Items) > 0 {
		doc.H2("Transactions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Date", "Kind", "Security", "ISIN", "Shares", "Amount", "Lines"},
		}
		for _, it := range r.Items {
			table.Rows = append(table.Rows, []string{
				it.When().String(),
				string(it.What()),
				it.Security().Name(),
				it.Security().ISIN(),
				pdfimport.FormatShares(it.Shares()),
				money(it.Amount()),
				lines(it.Source()),
			})
		}
		doc.Table(table)
	}

	var units [][]string
	for _, it := range r.Items {
		for _, u := range it.Units() {
			row := []string{it.When().String(), it.Security().ISIN(), string(u.Type()), money(u.Amount()), "", ""}
			if u.Type() == pdfimport.UnitGrossValue {
				row[4], row[5] = money(u.Forex()), u.Rate().String()
			}
			units = append(units, row)
		}
	}
	if len(units) > 0 {
		doc.H2("Units")
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Date", "ISIN", "Type", "Amount", "Forex", "Rate"},
			Rows:   units,
		})
	}

	if len(r.Diagnostics) > 0 {
		doc.H2("Discarded Blocks")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
			Header:    []string{"Lines", "Severity", "Section", "Error"},
		}
		for _, d := range r.Diagnostics {
			table.Rows = append(table.Rows, []string{
				lines(d.Source),
				d.Severity().String(),
				d.Section,
				d.Err.Error(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// money formats m the way documents do: "1.234,56 EUR".
func money(m pdfimport.Money) string {
	return pdfimport.FormatMoney(m) + " " + m.Currency()
}

func lines(src pdfimport.Source) string {
	return fmt.Sprintf("%d-%d", src.From, src.To)
}

// Summary renders one line per item.
func Summary(items []pdfimport.Item) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s %s\n", it.When(), Transaction(it))
	}
	return b.String()
}
