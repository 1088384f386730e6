// Package xconf 加载采样作业配置，基于 koanf 实现。
//
// 作业文件描述一次采样运行的全部参数：
//
//	sampling:
//	  salt: "323148"        # 省略时为默认盐值；显式写 "" 表示空盐值
//	  rate: "0.1"           # 与 Java 字面量一致，可带 d/f 后缀
//	  key_fields: [user_id] # 省略时使用全部字段
//	input:
//	  format: csv           # csv 或 jsonl
//	  delimiter: ","
//	  header: true
//	  schema: "user_id:chararray,visits:int"
//	workers: 4
//	log:
//	  level: info
//	  format: text
//	  file: ""              # 非空时写入按大小轮转的文件
//
// 支持 YAML（.yaml/.yml）与 JSON（.json），按扩展名识别。
// 未知键视为错误，避免拼写错误被静默忽略。
//
// Load/LoadBytes 只负责解析；语义校验由 [Job.Validate] 完成，
// 返回的错误都包装了 [ErrInvalidJob]。
package xconf
