package utils

import "time"

const DefaultDateFormat = "02/01/2006"

// excelEpoch is day zero of the spreadsheet serial system. Excel nominally
// counts from 1900-01-01 = serial 1 but also treats 1900 as a leap year, so
// anchoring at 1899-12-30 yields correct dates for every serial after the
// phantom 1900-02-29.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ExcelSerialToTime converts a spreadsheet date serial to a calendar date.
// Fractional parts (time of day) are truncated.
func ExcelSerialToTime(serial float64) time.Time {
	return excelEpoch.AddDate(0, 0, int(serial))
}

// FormatExcelSerial renders a date serial as dd/mm/yyyy. Non-positive serials
// yield an empty string rather than a nonsense 19th-century date.
func FormatExcelSerial(serial float64) string {
	if serial <= 0 {
		return ""
	}
	return ExcelSerialToTime(serial).Format(DefaultDateFormat)
}
