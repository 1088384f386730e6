package xsampling

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hnflee/datafu/pkg/sampling/xhashcode"
)

// DefaultSalt 未指定盐值时使用的默认盐值。
const DefaultSalt = "323148"

// Config 采样配置
//
// Config 是不可变值：字段不导出，只能通过构造函数创建，
// 在流水线阶段初始化时构造一次，之后被所有记录的求值共享。
type Config struct {
	salt string
	rate float64
	seed int32
}

// NewConfig 使用默认盐值创建采样配置。
//
// rate 为十进制字符串，例如 "0.1"。格式错误时返回 [ErrInvalidRate]。
func NewConfig(rate string) (Config, error) {
	return NewConfigWithSalt(DefaultSalt, rate)
}

// NewConfigWithSalt 使用指定盐值创建采样配置。
//
// 盐值不是秘密，只用于让同一批记录产生多组相互独立的采样结果。
// 空字符串是合法盐值（种子为 0），不会被替换为默认盐值。
func NewConfigWithSalt(salt, rate string) (Config, error) {
	r, err := ParseRate(rate)
	if err != nil {
		return Config{}, err
	}
	return newConfig(salt, r), nil
}

// ConfigFromRate 使用已解析的数值创建采样配置。
//
// rate 为 NaN 时返回 [ErrInvalidRate]，其他值（包括区间外的值）都被接受。
func ConfigFromRate(salt string, rate float64) (Config, error) {
	if math.IsNaN(rate) {
		return Config{}, fmt.Errorf("%w: NaN", ErrInvalidRate)
	}
	return newConfig(salt, rate), nil
}

func newConfig(salt string, rate float64) Config {
	return Config{
		salt: salt,
		rate: rate,
		seed: xhashcode.String(salt),
	}
}

// ParseRate 把十进制字符串解析为采样比率。
//
// 解析规则：
//   - 去除首尾空白
//   - 允许数字末尾带一个 d/D/f/F 后缀（如 "0.5d"），与历史配置兼容
//   - 支持科学计数法，如 "1e-3"
//   - NaN 视为格式错误
//   - 不接受数字分隔符 '_'；无穷只接受 "Infinity"、"+Infinity"、"-Infinity"
//
// 解析之外不做区间校验，调用方可以用 [Config.InRange] 自行提示。
func ParseRate(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if n := len(t); n > 1 && isFloatSuffix(t[n-1]) && isDigitOrDot(t[n-2]) {
		t = t[:n-1]
	}
	if err := checkRateSyntax(t); err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidRate, s, err)
	}

	r, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidRate, s, err)
	}
	if math.IsNaN(r) {
		return 0, fmt.Errorf("%w: %q is NaN", ErrInvalidRate, s)
	}
	return r, nil
}

// checkRateSyntax 拒绝 strconv.ParseFloat 比 Double.parseDouble 多接受的写法
func checkRateSyntax(t string) error {
	if strings.ContainsRune(t, '_') {
		return errors.New("digit separator '_' not allowed")
	}
	body := strings.TrimLeft(t, "+-")
	if len(body) >= 3 && strings.EqualFold(body[:3], "inf") && body != "Infinity" {
		return fmt.Errorf("infinity must be spelled %q", "Infinity")
	}
	return nil
}

func isFloatSuffix(c byte) bool {
	switch c {
	case 'd', 'D', 'f', 'F':
		return true
	default:
		return false
	}
}

func isDigitOrDot(c byte) bool {
	return c == '.' || (c >= '0' && c <= '9')
}

// Salt 返回盐值
func (c Config) Salt() string {
	return c.salt
}

// Rate 返回采样比率
func (c Config) Rate() float64 {
	return c.rate
}

// Seed 返回由盐值派生的种子
func (c Config) Seed() int32 {
	return c.seed
}

// InRange 报告采样比率是否落在 [0, 1] 内。
//
// 区间外的比率依然合法，只是失去了"保留比例"的含义。
func (c Config) InRange() bool {
	return c.rate >= 0 && c.rate <= 1
}

// String 返回配置的可读表示，用于日志
func (c Config) String() string {
	return fmt.Sprintf("salt=%q rate=%g seed=%d", c.salt, c.rate, c.seed)
}
