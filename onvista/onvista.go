// Package onvista reads the documents of the onvista bank: buy and sell
// confirmations, redemptions, dividend credits, accumulation notices and
// deliveries.
package onvista

import (
	"github.com/etnz/pdfimport"
)

// Label is the label of the extractor.
const Label = "Onvista"

// Line patterns shared by the document types.
const (
	amount     = `\d{1,3}(\.\d{3})*(,\d{2})?`
	shares     = `\d{1,3}(\.\d{3})*(,\d{3})?`
	day        = `\d+.\d+.\d{4}`
	securityLn = `(?P<name>.*) (?P<isin>[^ ]\S*)`
	// STK 25,000 EUR 2,382
	sharesLn = `(?P<notation>\w{3}) (?P<shares>` + shares + `)(.*)`
	// STK 28,000 02.12.2011 02.12.2011
	sharesDateLn = `(?P<notation>\w{3}) (?P<shares>` + shares + `) ` + day + ` (?P<date>` + day + `)(.*)`
	// 14.01.2015 172305047 EUR 59,55
	settlementLn = `(?P<date>` + day + `) \d{6,12} (?P<currency>\w{3}) (?P<amount>` + amount + `)`
	// Commerzbank AG Inhaber-Aktien o.N. DE000CBK1001
	// 5,5% TUI AG Wandelanl.v.2009(2014) 17.11.2014 17.11.2010 DE000TUAG117
	datedSecurityLn = `(?P<name>.*?) (` + day + ` ){0,2}(?P<isin>[^ ]\S*)`

	debit  = `Wert\s+Konto-Nr\. Betrag zu Ihren Lasten\s*`
	credit = `Wert\s+Konto-Nr\. Betrag zu Ihren Gunsten\s*`
)

// New returns the extractor for onvista documents. It applies to any
// document: onvista documents carry no distinctive bank marker.
func New() *pdfimport.Extractor {
	return pdfimport.NewExtractor(Label).
		AddBankIdentifier("").
		AddDocumentType(purchase("Wir haben für Sie gekauft")).
		AddDocumentType(sale()).
		AddDocumentType(purchase("Bestätigung")).
		AddDocumentType(redemption()).
		AddDocumentType(dividend()).
		AddDocumentType(accumulation()).
		AddDocumentType(transferIn())
}

// purchase reads a buy confirmation. Change confirmations share its layout.
func purchase(title string) *pdfimport.DocumentType {
	tx := pdfimport.NewTransaction(subject(pdfimport.KindBuy)).
		Section("name", "isin").
		Find(`Gattungsbezeichnung ISIN`).
		Match(securityLn).
		Assign(setSecurity).
		Section("notation", "shares").
		Find(`Nominal Kurs`).
		Match(sharesLn).
		Assign(setShares).
		Section("date", "amount", "currency").
		Find(debit).
		Match(settlementLn).
		Assign(setSettlement).
		Wrap(pdfimport.WrapBuySell)
	addFees(tx)

	// fees come before the settlement, which closes the confirmation
	return pdfimport.NewDocumentType(title).
		AddBlock(pdfimport.NewBlock(title + `(.*)`).EndWith(settlementLn).Set(tx))
}

func sale() *pdfimport.DocumentType {
	tx := pdfimport.NewTransaction(subject(pdfimport.KindSell)).
		Section("name", "isin").
		Find(`Gattungsbezeichnung ISIN`).
		Match(securityLn).
		Assign(setSecurity).
		Section("notation", "shares").
		Find(`Nominal Kurs`).
		Match(sharesLn).
		Assign(setShares).
		Section("date", "amount", "currency").
		Find(credit).
		// 12.04.2011 172305047 EUR 21,45
		Match(settlementLn).
		Assign(setSettlement).
		Wrap(pdfimport.WrapBuySell)
	addTaxes(tx)
	addFees(tx)

	return pdfimport.NewDocumentType("Wir haben für Sie verkauft").
		AddBlock(pdfimport.NewBlock(`Wir haben für Sie verkauft(.*)`).Set(tx))
}

// redemption reads the credit of a bond reaching maturity, a sale at face value.
func redemption() *pdfimport.DocumentType {
	tx := pdfimport.NewTransaction(subject(pdfimport.KindSell)).
		Section("name", "isin").
		Find(`Gattungsbezeichnung (.*) ISIN`).
		Match(`(?P<name>.*) (.*) (?P<isin>[^ ]\S*)`).
		Assign(setSecurity).
		Section("notation", "shares").
		Find(`Nominal Einlösung(.*)`).
		Match(sharesLn).
		Assign(setShares).
		Section("date", "amount", "currency").
		Find(credit).
		// 17.11.2014 172305047 EUR 51,85
		Match(settlementLn).
		Assign(setSettlement).
		Wrap(pdfimport.WrapBuySell)
	addTaxes(tx)

	return pdfimport.NewDocumentType("Gutschriftsanzeige").
		AddBlock(pdfimport.NewBlock(`Gutschriftsanzeige(.*)`).Set(tx))
}

// dividend reads dividend and coupon credits, and the reinvestment of the
// dividend in new shares if any.
func dividend() *pdfimport.DocumentType {
	credit := pdfimport.NewTransaction(accountSubject(pdfimport.KindDividend)).
		Section("name", "isin").
		Find(`Gattungsbezeichnung(.*) ISIN`).
		Match(datedSecurityLn).
		Assign(setAccountSecurity).
		Section("notation", "shares", "date", "valuta", "amount", "currency").
		// STK 25,000 17.05.2013 17.05.2013 EUR 0,700000
		Match(`(?P<notation>\w{3}) (?P<shares>` + shares + `) ` + day + ` (?P<date>` + day + `)?(.*)`).
		// 17.05.2013 172305047 EUR 17,50
		Match(`(?P<valuta>` + day + `)?(\d{6,12})?(.{7,58} )?(?P<currency>\w{3}) (?P<amount>` + amount + `)`).
		Assign(setPayment).
		Wrap(pdfimport.WrapAccount)
	addTaxes(credit)

	reinvest := pdfimport.NewTransaction(subject(pdfimport.KindBuy)).
		Section("date").
		Match(`\w{3} ` + shares + ` ` + day + ` (?P<date>` + day + `)(.*)`).
		Assign(setDate).
		Section("name", "isin").
		Find(`Die Dividende wurde wie folgt in neue Aktien reinvestiert:`).
		Find(`Gattungsbezeichnung ISIN`).
		Match(securityLn).
		Assign(setSecurity).
		Section("notation", "shares", "currency", "price").
		Find(`Nominal Reinvestierungspreis`).
		// STK 25,000 EUR 0,700000
		Match(`(?P<notation>\w{3}) (?P<shares>` + shares + `) (?P<currency>\w{3}) (?P<price>\d{1,3}(\.\d{3})*(,\d+)?)(.*)`).
		Assign(setReinvestment).
		Wrap(pdfimport.WrapBuySell)

	// "Erträgnisgutschrift" alone is also in the page header.
	return pdfimport.NewDocumentType("Erträgnisgutschrift").
		AddBlock(pdfimport.NewBlock(`Dividendengutschrift.*|Kupongutschrift.*|Erträgnisgutschrift.*(` + day + `)`).Set(credit)).
		AddBlock(pdfimport.NewBlock(`Reinvestierung.*`).Set(reinvest))
}

// accumulation reads the yearly notice of the retained income of a fund.
// The taxable amount is recorded as a dividend.
func accumulation() *pdfimport.DocumentType {
	tx := pdfimport.NewTransaction(accountSubject(pdfimport.KindDividend)).
		Section("name", "isin").
		Find(`Gattungsbezeichnung(.*) ISIN`).
		Match(datedSecurityLn).
		Assign(setAccountSecurity).
		Section("notation", "shares", "date").
		Find(`Nominal (Ex-Tag )?Zahltag (.*etrag pro .*)?(Zinssatz.*)?`).
		// STK 28,000 02.03.2015 04.03.2015 EUR 0,088340
		Match(sharesDateLn).
		Assign(setAccountShares).
		Section("amount", "currency").
		Match(`Steuerpflichtiger Betrag (.*) (?P<currency>\w{3}) (?P<amount>` + amount + `)`).
		Assign(setAccountAmount).
		Wrap(pdfimport.WrapAccount)
	addTaxes(tx)

	return pdfimport.NewDocumentType("Ertragsthesaurierung").
		AddBlock(pdfimport.NewBlock(`Ertragsthesaurierung(.*)`).Set(tx))
}

// transferIn reads a delivery of shares. It has no settlement, amounts are in
// the currency of the security.
func transferIn() *pdfimport.DocumentType {
	tx := pdfimport.NewTransaction(subject(pdfimport.KindTransferIn)).
		Section("name", "isin").
		Find(`Gattungsbezeichnung ISIN`).
		Match(securityLn).
		Assign(setSecurity).
		Section("notation", "shares", "date").
		Find(`Nominal Schlusstag Wert`).
		Match(sharesDateLn).
		Assign(setSharesDate).
		Wrap(pdfimport.WrapBuySell)
	addFees(tx)

	return pdfimport.NewDocumentType("Wir erhielten zu Gunsten Ihres Depots").
		AddBlock(pdfimport.NewBlock(`Wir erhielten zu Gunsten Ihres Depots(.*)`).Set(tx))
}
