package xfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerm 自动创建父目录时使用的权限
const DefaultDirPerm = 0750

// CleanPath 校验并规范化文件路径
//
// 拒绝空路径、空字节和以分隔符结尾的目录路径。".." 交给 filepath.Clean 处理，
// 不视为错误：路径由调用方自己给出，可以指向工作目录之外。
func CleanPath(filename string) (string, error) {
	if filename == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(filename, 0) {
		return "", ErrNullByte
	}
	// Clean 会去掉尾部分隔符，必须先判断
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, `\`) {
		return "", fmt.Errorf("%w: %q is a directory", ErrInvalidPath, filename)
	}

	cleaned := filepath.Clean(filename)
	if base := filepath.Base(cleaned); base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q has no file name", ErrInvalidPath, filename)
	}
	return cleaned, nil
}

// EnsureDir 确保文件的父目录存在，已存在时不修改权限。
func EnsureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, DefaultDirPerm)
}

// Create 校验路径、补齐父目录并创建（截断）文件
func Create(filename string) (*os.File, error) {
	cleaned, err := CleanPath(filename)
	if err != nil {
		return nil, err
	}
	if err := EnsureDir(cleaned); err != nil {
		return nil, fmt.Errorf("xfile: create parent of %q: %w", cleaned, err)
	}
	return os.Create(cleaned) //nolint:gosec // 路径由调用方指定
}
