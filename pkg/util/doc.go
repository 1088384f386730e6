// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 输出与日志文件的路径净化、父目录创建
package util
