package incident

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/ixugo/goddd/pkg/reason"
)

// ClockTime 当天内的时刻，精确到秒，不含日期与时区（按会话本地时区理解）
type ClockTime struct {
	hour, minute, second int
}

// NewClockTime 越界的分量会导致 ok=false
func NewClockTime(hour, minute, second int) (ClockTime, bool) {
	t := ClockTime{hour: hour, minute: minute, second: second}
	return t, t.Valid()
}

// ParseClockTime 支持 HH:MM 与 HH:MM:SS
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, reason.ErrBadRequest.Withf("invalid time[%s], want HH:MM[:SS]", s)
	}
	var v [3]int
	for i, p := range parts {
		if len(p) != 2 || !isDigits(p) {
			return ClockTime{}, reason.ErrBadRequest.Withf("invalid time[%s], want HH:MM[:SS]", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return ClockTime{}, reason.ErrBadRequest.Withf("invalid time[%s] err[%s]", s, err.Error())
		}
		v[i] = n
	}
	t, ok := NewClockTime(v[0], v[1], v[2])
	if !ok {
		return ClockTime{}, reason.ErrBadRequest.Withf("time[%s] out of range", s)
	}
	return t, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func MustClockTime(s string) ClockTime {
	t, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ClockTime) Valid() bool {
	return t.hour >= 0 && t.hour <= 23 &&
		t.minute >= 0 && t.minute <= 59 &&
		t.second >= 0 && t.second <= 59
}

func (t ClockTime) Hour() int   { return t.hour }
func (t ClockTime) Minute() int { return t.minute }
func (t ClockTime) Second() int { return t.second }

// String HH:MM:SS
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
}

// HHMM 时间轴使用的格式
func (t ClockTime) HHMM() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t ClockTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ClockTime) UnmarshalText(b []byte) error {
	v, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Scan implements sql.Scanner.
func (t *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	case nil:
		*t = ClockTime{}
		return nil
	}
	return fmt.Errorf("unsupported clock time type %T", src)
}

// Value implements driver.Valuer.
func (t ClockTime) Value() (driver.Value, error) {
	return t.String(), nil
}

// GormDataType 以字符串存储
func (ClockTime) GormDataType() string {
	return "string"
}
