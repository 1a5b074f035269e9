package types

import "strings"

// GameMode 定义游戏模式
type GameMode int

const (
	// ModeTimeAttack 限时模式：倒计时结束即结算，切到炸弹扣分
	ModeTimeAttack GameMode = iota
	// ModeSurvival 存活模式：生命耗尽即结算，漏掉水果或切到炸弹扣命
	ModeSurvival
)

// String 返回模式名（用于存档与日志）
func (m GameMode) String() string {
	switch m {
	case ModeTimeAttack:
		return "time"
	case ModeSurvival:
		return "survival"
	default:
		return "unknown"
	}
}

// ParseGameMode 按名称解析模式，接受 "time"/"timeattack" 与 "survival"/"life"
func ParseGameMode(name string) (GameMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "time", "timeattack", "time-attack":
		return ModeTimeAttack, true
	case "survival", "life", "lives":
		return ModeSurvival, true
	default:
		return 0, false
	}
}

// MarshalYAML 以字符串形式写入存档
func (m GameMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML 从字符串读取，未知值按限时模式处理
func (m *GameMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, ok := ParseGameMode(s)
	if !ok {
		parsed = ModeTimeAttack
	}
	*m = parsed
	return nil
}
