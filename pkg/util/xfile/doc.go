// Package xfile 提供采样输出与日志文件的路径工具。
//
// CleanPath 只做格式校验：拒绝空路径、空字节和目录路径，
// 不限制目标目录。Create 在校验后补齐父目录再创建文件。
//
//	f, err := xfile.Create("out/sampled.csv")
//	if errors.Is(err, xfile.ErrInvalidPath) {
//	    // 拒绝
//	}
package xfile
