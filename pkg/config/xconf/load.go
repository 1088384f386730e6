package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置文件格式
type Format string

// 支持的格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Load 从文件加载作业，按扩展名识别格式
func Load(path string) (*Job, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节加载作业
//
// 未出现的键保持 [DefaultJob] 中的默认值，空数据得到默认作业。
// 因此省略 sampling.salt 得到默认盐值，而 salt: "" 得到空盐值。
func LoadBytes(data []byte, format Format) (*Job, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	job := DefaultJob()
	if err := k.UnmarshalWithConf("", job, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           job,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return job, nil
}

// DetectFormat 根据扩展名判断格式
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
