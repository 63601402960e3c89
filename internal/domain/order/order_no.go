package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNo 生成订单号
// 格式: ORD + 下单时间(yyyyMMddHHmmss) + 8位随机十六进制
// 示例: ORD20240520103000a1b2c3d4
// 时间前缀保证大致有序,随机后缀防止遍历
func GenerateOrderNo(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "ORD" + now.Format("20060102150405") + random
}
