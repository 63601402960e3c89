package mysql

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/clock"
)

// sqlDate 只有年月日的日期列
// 写入时是"2006-01-02"字符串,MySQL的DATE列和SQLite的文本列按字典序比较结果一致
type sqlDate time.Time

func newSQLDate(t time.Time) sqlDate {
	return sqlDate(clock.DateOf(t))
}

// Time 转回time.Time(UTC零点)
func (d sqlDate) Time() time.Time {
	return time.Time(d)
}

// GormDataType 迁移时的列类型
func (sqlDate) GormDataType() string {
	return "date"
}

// Value 实现driver.Valuer
func (d sqlDate) Value() (driver.Value, error) {
	return time.Time(d).Format(clock.DateLayout), nil
}

// Scan 实现sql.Scanner
// go-sql-driver在parseTime=true时返回time.Time,否则返回[]byte;
// mattn/go-sqlite3对date列返回time.Time
func (d *sqlDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = newSQLDate(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d = sqlDate{}
		return nil
	}
	return fmt.Errorf("无法转换为日期: %T", value)
}

func (d *sqlDate) parse(s string) error {
	if len(s) > len(clock.DateLayout) {
		s = s[:len(clock.DateLayout)]
	}
	t, err := clock.ParseDate(s)
	if err != nil {
		return err
	}
	*d = sqlDate(t)
	return nil
}

// dateArg 查询参数:把"今天"格式化成与列相同的字符串
func dateArg(t time.Time) string {
	return clock.DateOf(t).Format(clock.DateLayout)
}
