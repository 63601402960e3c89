// Package money 金额格式化，数据库和接口里金额一律用int64"分"
package money

import "fmt"

// FormatYuan 分 → "元"字符串，如 1999 → "19.99"，-50 → "-0.50"
func FormatYuan(fen int64) string {
	sign := ""
	if fen < 0 {
		sign = "-"
		fen = -fen
	}
	return fmt.Sprintf("%s%d.%02d", sign, fen/100, fen%100)
}
