package renderer

import (
	"fmt"

	"github.com/etnz/pdfimport"
)

// Transaction renders an item to a string.
func Transaction(it pdfimport.Item) string {
	shares := pdfimport.FormatShares(it.Shares())
	switch it.(type) {
	case pdfimport.Buy:
		return fmt.Sprintf("Bought %s of %s for %s", shares, it.Security(), money(it.Amount()))
	case pdfimport.Sell:
		return fmt.Sprintf("Sold %s of %s for %s", shares, it.Security(), money(it.Amount()))
	case pdfimport.Dividend:
		return fmt.Sprintf("Dividend of %s for %s", money(it.Amount()), it.Security())
	case pdfimport.TransferIn:
		return fmt.Sprintf("Received %s of %s", shares, it.Security())
	default:
		return string(it.What())
	}
}
