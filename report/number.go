package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soderasen-au/go-common/util"
)

// FormatNum renders num using a `#<sep>##0<point>00...` style pattern, e.g.
// "#,##0.00" => "12,345.68".
func FormatNum(num float64, fmtStr string) (string, *util.Result) {
	if len(fmtStr) == 0 {
		return "", util.MsgError("fmtStr", "empty format pattern")
	}
	if fmtStr[0] != '#' {
		return "", util.MsgError("fmtStr", "not leading with '#'")
	}
	intPos := strings.Index(fmtStr, "##0")
	if intPos < 0 {
		return "", util.MsgError("fmtStr", "no integer descriptor")
	}
	thousandSep := fmtStr[1:intPos]

	decimalPoint := "."
	decPart := fmtStr[intPos+3:]
	fractionPrecision := len(decPart) - 1

	numString := strconv.FormatFloat(num, 'f', fractionPrecision, 64)
	parts := strings.Split(numString, ".")
	intPart := parts[0]
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}
	intParts := make([]string, (len(intPart)+2)/3)
	for i := len(intParts) - 1; i > 0; i-- {
		intParts[i] = intPart[len(intPart)-3:]
		intPart = intPart[:len(intPart)-3]
	}
	intParts[0] = intPart

	if len(decPart) > 0 {
		decimalPoint = decPart[0:1]
		return fmt.Sprintf("%s%s%s%s", sign, strings.Join(intParts, thousandSep), decimalPoint, parts[1]), nil
	} else {
		return sign + strings.Join(intParts, thousandSep), nil
	}
}

// FormatMoney renders a currency amount with thousand separators and two
// decimals; normalizers use it so that printed cells carry pre-formatted text.
func FormatMoney(num float64) string {
	s, res := FormatNum(num, "#,##0.00")
	if res != nil {
		return strconv.FormatFloat(num, 'f', 2, 64)
	}
	return s
}
