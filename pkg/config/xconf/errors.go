package xconf

import "errors"

var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示读取配置文件失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示配置内容无法解析。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置无法映射到作业结构（类型不符或未知键）。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrInvalidJob 表示作业参数不合法。
	ErrInvalidJob = errors.New("xconf: invalid job")
)
