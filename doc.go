// Package pdfimport extracts financial transactions from the text of bank
// documents: buy and sell confirmations, dividend credits, deliveries.
//
// An institution is described as data, with the fluent API:
//   - An Extractor groups the DocumentTypes one bank issues.
//   - A DocumentType is activated by a keyword found anywhere in the
//     document, and owns Blocks.
//   - A Block locates each instance of a transaction by a start line, and
//     parses it with a Transaction.
//   - A Transaction is an ordered list of Sections. Each Section finds its
//     anchor lines, matches its capture lines with named groups, then assigns
//     the captured Values to the transaction state.
//
// Captured literals are localized (German) and go through the coercers
// ParseAmount, ParseShares, ParseDate and ParseCurrency.
//
// An Importer runs the extractors over documents and returns, for each, the
// extracted Items and the Diagnostics of the block instances that could not
// be read. A failing instance never affects the others.
package pdfimport
