package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gonewx/slicehero/pkg/embedded"
	"github.com/gonewx/slicehero/pkg/types"
	"github.com/gonewx/slicehero/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 内置配置文件路径
const DefaultGameConfigPath = "data/game.yaml"

// GameConfig 游戏玩法调参配置
//
// 所有帧相关数值均以"帧"为单位（标称 60 帧/秒）。
// 加载时从 DefaultGameConfig 出发，YAML 中出现的字段覆盖默认值。
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	Screen     ScreenConfig                      `yaml:"screen"`
	Physics    PhysicsConfig                     `yaml:"physics"`
	Spawn      SpawnConfig                       `yaml:"spawn"`
	Slice      SliceConfig                       `yaml:"slice"`
	Pointer    PointerConfig                     `yaml:"pointer"`
	Session    SessionConfig                     `yaml:"session"`
	Modifiers  ModifiersConfig                   `yaml:"modifiers"`
	Feedback   FeedbackConfig                    `yaml:"feedback"`
	Categories map[string]CategoryOverrideConfig `yaml:"categories"`
}

// ScreenConfig 画布尺寸与帧率
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	TPS    int     `yaml:"tps"` // 每秒模拟帧数
}

// Size 返回取整后的窗口尺寸
func (s ScreenConfig) Size() (int, int) {
	return int(s.Width), int(s.Height)
}

// PhysicsConfig 运动参数
type PhysicsConfig struct {
	// Gravity 每帧竖直速度增量
	Gravity float64 `yaml:"gravity"`

	// SlowMotionScale 慢动作期间的时间缩放
	SlowMotionScale float64 `yaml:"slowMotionScale"`

	// FalloutMargin 物体 y 超过 高度+FalloutMargin 视为掉出
	FalloutMargin float64 `yaml:"falloutMargin"`

	// ParticleGravityFactor 粒子所受重力相对比例
	ParticleGravityFactor float64 `yaml:"particleGravityFactor"`
	ParticleDecay         float64 `yaml:"particleDecay"`

	// 浮动文字（不受时间缩放影响）
	TextRise  float64 `yaml:"textRise"`
	TextDecay float64 `yaml:"textDecay"`
}

// SpawnConfig 生成参数
type SpawnConfig struct {
	// BaseInterval 普通状态下两次生成之间的帧数阈值
	BaseInterval float64 `yaml:"baseInterval"`

	// FrenzyInterval 狂热状态下的阈值（优先于慢动作）
	FrenzyInterval float64 `yaml:"frenzyInterval"`

	// SlowMotionFactor 慢动作状态下阈值 = BaseInterval * SlowMotionFactor
	SlowMotionFactor float64 `yaml:"slowMotionFactor"`

	EdgeInset    float64 `yaml:"edgeInset"`    // 左右留白
	BottomMargin float64 `yaml:"bottomMargin"` // 出生点位于底边下方的距离

	HorizontalSpread float64 `yaml:"horizontalSpread"` // vx = (rand-0.5)*spread
	LaunchSpeedMin   float64 `yaml:"launchSpeedMin"`   // vy = -(rand*range+min)
	LaunchSpeedRange float64 `yaml:"launchSpeedRange"`
	RotationSpread   float64 `yaml:"rotationSpread"`

	// Seed 随机种子，0 表示按当前时间取种
	Seed int64 `yaml:"seed"`
}

// SliceConfig 切割判定参数
type SliceConfig struct {
	// MinSegmentLength 切割线段最短长度，低于此值视为静止不判定
	MinSegmentLength float64 `yaml:"minSegmentLength"`

	// HitMargin 命中判定在半径之外的额外宽容距离
	HitMargin float64 `yaml:"hitMargin"`
}

// PointerConfig 指针轨迹参数
type PointerConfig struct {
	TrailLength    int     `yaml:"trailLength"`
	AngleThreshold float64 `yaml:"angleThreshold"` // 位移超过该值才更新朝向

	// StaleAfterTicks 超过该帧数没有新采样时丢弃轨迹，0 表示不启用
	StaleAfterTicks int `yaml:"staleAfterTicks"`
}

// SessionConfig 一局的规则参数
type SessionConfig struct {
	RoundSeconds    float64 `yaml:"roundSeconds"`
	MaxLives        int     `yaml:"maxLives"`
	LeaderboardSize int     `yaml:"leaderboardSize"`
}

// ModifiersConfig 全局效果持续时间（帧）
type ModifiersConfig struct {
	SlowMotionTicks int `yaml:"slowMotionTicks"`
	FrenzyTicks     int `yaml:"frenzyTicks"`
}

// FeedbackConfig 切中反馈参数
type FeedbackConfig struct {
	HazardBurst int `yaml:"hazardBurst"`
	ChillBurst  int `yaml:"chillBurst"`
	FrenzyBurst int `yaml:"frenzyBurst"`
	PlainBurst  int `yaml:"plainBurst"`

	ParticleSpeed     float64 `yaml:"particleSpeed"`
	ParticleSizeMin   float64 `yaml:"particleSizeMin"`
	ParticleSizeRange float64 `yaml:"particleSizeRange"`
}

// CategoryOverrideConfig 单个类别的覆盖项，未填写的字段保留内置值
type CategoryOverrideConfig struct {
	Score  *int     `yaml:"score"`
	Radius *float64 `yaml:"radius"`
	Weight *float64 `yaml:"weight"`
	Color  string   `yaml:"color"`
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Screen: ScreenConfig{Width: 1280, Height: 720, TPS: 60},
		Physics: PhysicsConfig{
			Gravity:               0.4,
			SlowMotionScale:       0.4,
			FalloutMargin:         50,
			ParticleGravityFactor: 0.5,
			ParticleDecay:         0.03,
			TextRise:              1.5,
			TextDecay:             0.02,
		},
		Spawn: SpawnConfig{
			BaseInterval:     55,
			FrenzyInterval:   6,
			SlowMotionFactor: 0.6,
			EdgeInset:        50,
			BottomMargin:     50,
			HorizontalSpread: 8,
			LaunchSpeedMin:   14,
			LaunchSpeedRange: 10,
			RotationSpread:   0.2,
		},
		Slice:     SliceConfig{MinSegmentLength: 3, HitMargin: 15},
		Pointer:   PointerConfig{TrailLength: 8, AngleThreshold: 2},
		Session:   SessionConfig{RoundSeconds: 60, MaxLives: 3, LeaderboardSize: 5},
		Modifiers: ModifiersConfig{SlowMotionTicks: 300, FrenzyTicks: 300},
		Feedback: FeedbackConfig{
			HazardBurst:       25,
			ChillBurst:        20,
			FrenzyBurst:       30,
			PlainBurst:        12,
			ParticleSpeed:     20,
			ParticleSizeMin:   2,
			ParticleSizeRange: 6,
		},
	}
}

// LoadGameConfig 从嵌入资源加载游戏配置
//
// 参数:
//   - path: 嵌入路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 合并默认值并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	if !embedded.IsInitialized() || !embedded.Exists(path) {
		log.Printf("[Config] %s not embedded, using built-in defaults", path)
		return DefaultGameConfig(), nil
	}
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// LoadGameConfigFile 从磁盘文件加载游戏配置（--config 参数）
func LoadGameConfigFile(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 内容，缺失字段取默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultGameConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return config, nil
}

// Validate 验证配置有效性
//
// 返回:
//   - error: 第一个不合法的字段，全部合法时返回 nil
func (c *GameConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %.0fx%.0f", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TPS <= 0 {
		return fmt.Errorf("screen.tps must be positive, got %d", c.Screen.TPS)
	}
	if c.Screen.Width <= 2*c.Spawn.EdgeInset {
		return fmt.Errorf("screen width %.0f leaves no room for spawn inset %.0f", c.Screen.Width, c.Spawn.EdgeInset)
	}

	if c.Physics.SlowMotionScale <= 0 || c.Physics.SlowMotionScale > 1 {
		return fmt.Errorf("physics.slowMotionScale must be in (0,1], got %.2f", c.Physics.SlowMotionScale)
	}
	if c.Physics.ParticleDecay <= 0 || c.Physics.TextDecay <= 0 {
		return fmt.Errorf("particle and text decay must be positive")
	}

	if c.Spawn.BaseInterval < 0 || c.Spawn.FrenzyInterval < 0 {
		return fmt.Errorf("spawn intervals must not be negative")
	}
	if c.Spawn.SlowMotionFactor <= 0 {
		return fmt.Errorf("spawn.slowMotionFactor must be positive, got %.2f", c.Spawn.SlowMotionFactor)
	}

	if c.Slice.MinSegmentLength < 0 || c.Slice.HitMargin < 0 {
		return fmt.Errorf("slice thresholds must not be negative")
	}

	if c.Pointer.TrailLength < 2 {
		return fmt.Errorf("pointer.trailLength must be at least 2, got %d", c.Pointer.TrailLength)
	}
	if c.Pointer.StaleAfterTicks < 0 {
		return fmt.Errorf("pointer.staleAfterTicks must not be negative, got %d", c.Pointer.StaleAfterTicks)
	}

	if c.Session.RoundSeconds <= 0 {
		return fmt.Errorf("session.roundSeconds must be positive, got %.1f", c.Session.RoundSeconds)
	}
	if c.Session.MaxLives <= 0 {
		return fmt.Errorf("session.maxLives must be positive, got %d", c.Session.MaxLives)
	}
	if c.Session.LeaderboardSize <= 0 {
		return fmt.Errorf("session.leaderboardSize must be positive, got %d", c.Session.LeaderboardSize)
	}

	if c.Modifiers.SlowMotionTicks < 0 || c.Modifiers.FrenzyTicks < 0 {
		return fmt.Errorf("modifier durations must not be negative")
	}

	if _, err := c.CategoryTable(); err != nil {
		return err
	}
	return nil
}

// CategoryTable 在内置类别表上应用 categories 覆盖项
//
// 返回:
//   - types.CategoryTable: 合并后的数据表
//   - error: 未知类别名、非正半径、负权重、炸弹得分非负、总权重为零或颜色格式错误
func (c *GameConfig) CategoryTable() (types.CategoryTable, error) {
	table := types.DefaultCategoryTable()

	for name, override := range c.Categories {
		category, ok := types.ParseCategory(name)
		if !ok {
			return table, fmt.Errorf("unknown category '%s'", name)
		}
		data := &table[category]
		if override.Score != nil {
			data.Score = *override.Score
		}
		if override.Radius != nil {
			data.Radius = *override.Radius
		}
		if override.Weight != nil {
			data.Weight = *override.Weight
		}
		if strings.TrimSpace(override.Color) != "" {
			col, err := utils.ParseHexColor(override.Color)
			if err != nil {
				return table, fmt.Errorf("category '%s': %w", name, err)
			}
			data.Color = col
		}
	}

	for _, category := range types.AllCategories() {
		data := table[category]
		if data.Radius <= 0 {
			return table, fmt.Errorf("category '%s' radius must be positive, got %.1f", category, data.Radius)
		}
		if data.Weight < 0 {
			return table, fmt.Errorf("category '%s' weight must not be negative, got %.1f", category, data.Weight)
		}
		// 计时模式下炸弹按得分扣分，必须为负
		if category.IsHazard() && data.Score >= 0 {
			return table, fmt.Errorf("category '%s' score must be negative, got %d", category, data.Score)
		}
	}
	if utils.TotalWeight(table.Weights()) <= 0 {
		return table, fmt.Errorf("total category weight must be positive")
	}

	return table, nil
}

// SpawnThreshold 按当前效果返回生成阈值
// 狂热优先于慢动作
func (c *SpawnConfig) SpawnThreshold(frenzy, slowMotion bool) float64 {
	switch {
	case frenzy:
		return c.FrenzyInterval
	case slowMotion:
		return c.BaseInterval * c.SlowMotionFactor
	default:
		return c.BaseInterval
	}
}
