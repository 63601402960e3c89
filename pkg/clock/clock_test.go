package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	// 上海时间 2024-03-01 00:30 对应 UTC 2024-02-29 16:30，日期按上海算
	ts := time.Date(2024, 3, 1, 0, 30, 0, 0, shanghai)
	assert.Equal(t, "2024-03-01", DateOf(ts).Format(DateLayout))
	assert.Equal(t, time.UTC, DateOf(ts).Location())
}

func TestFixed(t *testing.T) {
	c := NewFixed(time.Date(2024, 5, 20, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, MustDate("2024-05-20"), c.Today())
}

func TestNewSystem(t *testing.T) {
	t.Run("合法时区", func(t *testing.T) {
		c, err := NewSystem("Asia/Shanghai")
		require.NoError(t, err)
		today := c.Today()
		assert.Zero(t, today.Hour())
		assert.Equal(t, time.UTC, today.Location())
	})

	t.Run("非法时区", func(t *testing.T) {
		_, err := NewSystem("Mars/Olympus")
		assert.Error(t, err)
	})
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)

	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())
}
