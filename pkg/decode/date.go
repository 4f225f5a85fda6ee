package decode

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/mfdata/zunload/pkg/table"
)

// PackedDate decodes a 4-byte packed yyyydddF date: the first seven hex
// digits read as a 4-digit year and a 3-digit day of year. All-zero
// digits, non-decimal digits and out-of-range days all yield the no-date
// sentinel; real extracts are full of unset and malformed dates and none
// of them may stop a scan.
func PackedDate(b []byte) table.Value {
	if len(b) < 4 {
		return table.NoDate()
	}
	digits := hex.EncodeToString(b)[:7]
	if digits == "0000000" {
		return table.NoDate()
	}
	year, err := strconv.Atoi(digits[:4])
	if err != nil {
		return table.NoDate()
	}
	day, err := strconv.Atoi(digits[4:])
	if err != nil {
		return table.NoDate()
	}
	if day < 1 || day > daysInYear(year) {
		return table.NoDate()
	}
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
	return table.Date(d)
}

func daysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}
