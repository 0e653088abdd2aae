// Package sheet loads recipients from spreadsheet files.
//
// Supported formats are picked by file extension: .xlsx/.xlsm through
// excelize, legacy .xls through extrame/xls and .csv through gocsv. Only the
// first sheet is read. The first non-blank row is the header; the remaining
// non-blank rows become recipients in table order.
package sheet
