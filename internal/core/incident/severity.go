package incident

import (
	"github.com/ixugo/goddd/pkg/reason"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity 事件等级，封闭集合
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeverityResolved Severity = "resolved" // 已关闭的事件，与之前的等级无关
)

// Severities 按运维紧急程度排列
var Severities = []Severity{SeverityCritical, SeverityWarning, SeverityInfo, SeverityResolved}

// ParseSeverity 数据入口处校验等级，不在集合内直接拒绝，不做任何兼容转换
func ParseSeverity(s string) (Severity, error) {
	v := Severity(s)
	if !v.Valid() {
		return "", reason.ErrBadRequest.Withf("invalid severity[%s]", s)
	}
	return v, nil
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo, SeverityResolved:
		return true
	}
	return false
}

// Rank 紧急程度，数值越大越紧急；resolved 为 0
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// IsActive 未关闭的事件
func (s Severity) IsActive() bool {
	return s.Valid() && s != SeverityResolved
}

// Label 徽标文本，如 CRITICAL；Caser 有状态，不能跨协程共享
func (s Severity) Label() string {
	return cases.Upper(language.Und).String(string(s))
}

// CriterionAll 不过滤
const CriterionAll Criterion = "all"

// Criterion 列表过滤条件，"all" 或某一个等级
type Criterion string

// ParseCriterion 空字符串视为 all
func ParseCriterion(s string) (Criterion, error) {
	if s == "" || Criterion(s) == CriterionAll {
		return CriterionAll, nil
	}
	sev, err := ParseSeverity(s)
	if err != nil {
		return "", reason.ErrBadRequest.Withf("invalid filter[%s]", s)
	}
	return Criterion(sev), nil
}

// Match 判断事件是否满足过滤条件
func (c Criterion) Match(s Severity) bool {
	return c == CriterionAll || Severity(c) == s
}
