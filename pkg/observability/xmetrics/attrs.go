package xmetrics

// Attr 观测属性
type Attr struct {
	Key   string
	Value any
}

// String 字符串属性
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Bool 布尔属性
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

// Int64 整数属性
func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: value}
}

// Float64 浮点属性
func Float64(key string, value float64) Attr {
	return Attr{Key: key, Value: value}
}
