package xconf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hnflee/datafu/pkg/observability/xlog"
	"github.com/hnflee/datafu/pkg/sampling/xrecord"
	"github.com/hnflee/datafu/pkg/sampling/xsampling"
)

// 输入格式
const (
	InputCSV   = "csv"
	InputJSONL = "jsonl"
)

// Job 一次采样运行的配置
type Job struct {
	Sampling Sampling `koanf:"sampling"`
	Input    Input    `koanf:"input"`
	Workers  int      `koanf:"workers"`
	Log      Log      `koanf:"log"`
}

// Sampling 采样参数
//
// Salts 非空时取代 Salt：每个盐值是一个独立样本，按 Mode（all/any）
// 取交集或并集。
type Sampling struct {
	Salt      string   `koanf:"salt"`
	Salts     []string `koanf:"salts"`
	Mode      string   `koanf:"mode"`
	Rate      string   `koanf:"rate"`
	KeyFields []string `koanf:"key_fields"`
}

// Input 输入格式
type Input struct {
	Format    string `koanf:"format"`
	Delimiter string `koanf:"delimiter"`
	Header    bool   `koanf:"header"`
	Schema    string `koanf:"schema"`
}

// Log 日志参数
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// DefaultJob 返回默认作业，rate 与 schema 需由调用方补充
func DefaultJob() *Job {
	return &Job{
		Sampling: Sampling{Salt: xsampling.DefaultSalt},
		Input:    Input{Format: InputCSV, Delimiter: ","},
		Workers:  1,
		Log:      Log{Level: "info", Format: "text"},
	}
}

// Validate 检查作业参数
//
// 所有错误都包装了 ErrInvalidJob。rate 超出 [0,1] 不算错误，见 Warnings。
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Sampling.Rate) == "" {
		return fmt.Errorf("%w: sampling.rate is required", ErrInvalidJob)
	}
	if _, err := xsampling.ParseRate(j.Sampling.Rate); err != nil {
		return fmt.Errorf("%w: sampling.rate: %w", ErrInvalidJob, err)
	}
	if _, err := xsampling.ParseMode(j.Sampling.Mode); err != nil {
		return fmt.Errorf("%w: sampling.mode: %w", ErrInvalidJob, err)
	}

	switch j.Input.Format {
	case InputCSV:
		if _, err := j.Delimiter(); err != nil {
			return err
		}
	case InputJSONL:
		if j.Input.Header {
			return fmt.Errorf("%w: input.header is only valid for csv", ErrInvalidJob)
		}
	default:
		return fmt.Errorf("%w: input.format %q (want csv or jsonl)", ErrInvalidJob, j.Input.Format)
	}

	schema, err := j.Schema()
	if err != nil {
		return err
	}
	if schema == nil && !(j.Input.Format == InputCSV && j.Input.Header) {
		return fmt.Errorf("%w: input.schema is required unless a csv header provides column names", ErrInvalidJob)
	}
	if schema != nil {
		if _, err := j.KeyIndexes(schema); err != nil {
			return err
		}
	}

	if j.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidJob, j.Workers)
	}
	if _, err := xlog.ParseLevel(j.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidJob, err)
	}
	switch strings.ToLower(strings.TrimSpace(j.Log.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidJob, j.Log.Format)
	}
	return nil
}

// Warnings 返回不影响运行但值得提示的问题
func (j *Job) Warnings() []string {
	var out []string
	if rate, err := xsampling.ParseRate(j.Sampling.Rate); err == nil && (rate < 0 || rate > 1) {
		out = append(out, fmt.Sprintf("sampling.rate %g is outside [0,1]", rate))
	}
	for _, salt := range j.SaltList() {
		if salt == "" {
			out = append(out, "sampling.salt is empty")
			break
		}
	}
	return out
}

// SaltList 返回生效的盐值：Salts 非空时为 Salts，否则为单个 Salt
func (j *Job) SaltList() []string {
	if len(j.Sampling.Salts) > 0 {
		return append([]string(nil), j.Sampling.Salts...)
	}
	return []string{j.Sampling.Salt}
}

// SamplingConfig 按第一个生效盐值构造采样配置
func (j *Job) SamplingConfig() (xsampling.Config, error) {
	return xsampling.NewConfigWithSalt(j.SaltList()[0], j.Sampling.Rate)
}

// Predicate 按作业构造采样器
//
// 单个盐值时返回 *xsampling.KeySampler；多个盐值时返回按 sampling.mode
// 组合的 *xsampling.CompositeSampler，各成员共用同一个 rate。
func (j *Job) Predicate() (xsampling.Predicate, error) {
	mode, err := xsampling.ParseMode(j.Sampling.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: sampling.mode: %w", ErrInvalidJob, err)
	}
	salts := j.SaltList()
	members := make([]xsampling.Predicate, len(salts))
	for i, salt := range salts {
		cfg, err := xsampling.NewConfigWithSalt(salt, j.Sampling.Rate)
		if err != nil {
			return nil, fmt.Errorf("%w: sampling: %w", ErrInvalidJob, err)
		}
		ks, err := xsampling.NewKeySampler(cfg)
		if err != nil {
			return nil, err
		}
		members[i] = ks
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return xsampling.NewCompositeSampler(mode, members...)
}

// Schema 解析 input.schema，未配置时返回 nil
func (j *Job) Schema() (*xrecord.Schema, error) {
	if strings.TrimSpace(j.Input.Schema) == "" {
		return nil, nil
	}
	s, err := xrecord.ParseSchema(j.Input.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: input.schema: %w", ErrInvalidJob, err)
	}
	return s, nil
}

// KeyIndexes 把 key_fields 解析为 schema 中的下标
//
// 未配置 key_fields 时返回 nil，表示使用全部字段。
func (j *Job) KeyIndexes(schema *xrecord.Schema) ([]int, error) {
	if len(j.Sampling.KeyFields) == 0 {
		return nil, nil
	}
	if schema == nil {
		return nil, fmt.Errorf("%w: sampling.key_fields needs a schema", ErrInvalidJob)
	}
	idx, err := schema.Indexes(j.Sampling.KeyFields)
	if err != nil {
		return nil, fmt.Errorf("%w: sampling.key_fields: %w", ErrInvalidJob, err)
	}
	return idx, nil
}

// Delimiter 返回 CSV 分隔符，必须是单个字符；`\t` 与 "tab" 表示制表符
func (j *Job) Delimiter() (rune, error) {
	d := j.Input.Delimiter
	switch d {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(d)
	if size != len(d) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: input.delimiter %q must be a single character", ErrInvalidJob, d)
	}
	return r, nil
}
