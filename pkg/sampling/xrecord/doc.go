// Package xrecord 把文本输入解析成带类型的有序字段序列，供采样谓词使用。
//
// 字段的 Go 类型决定了它的哈希（见 xhashcode.Value），因此同一列在不同运行之间
// 必须按同一类型解析。[Schema] 负责把列名固定到类型：
//
//	schema, err := xrecord.ParseSchema("user_id:chararray, age:int, score:double")
//
// 支持的类型与解析结果：
//
//	chararray  string
//	int        int32
//	long       int64
//	float      float32
//	double     float64
//	boolean    bool（大小写不敏感的 true/false）
//	bytearray  []byte（未声明类型的列默认使用此类型）
//
// 空单元格、JSON null 与缺失的 JSON 键都解析为 nil，在哈希中对应空值哨兵 0。
//
// # 读取
//
//   - [NewCSVReader]：分隔符文本，可跳过表头
//   - [NewJSONLReader]：每行一个 JSON 对象
//
// 两者都实现 [Reader]，读到末尾返回 io.EOF。
// 单行无法解析时返回包装了 [ErrMalformedRecord] 的错误（带行号），
// 读取器仍可继续读取下一行，由调用方决定跳过还是中止。
//
// # 写出
//
// [CSVWriter] 与 [JSONLWriter] 按原样写回被保留的行，输出与输入格式一致。
package xrecord
