package xfilter

import "github.com/hnflee/datafu/pkg/observability/xmetrics"

// Stats 一次过滤的计数
type Stats struct {
	Kept    int64
	Dropped int64
	// Skipped 解析或求值失败、按 WithSkipMalformed 跳过的记录数。
	Skipped int64
	// Fingerprint 保留记录 key 的摘要。
	Fingerprint Fingerprint
}

// Seen 返回处理过的记录总数
func (s Stats) Seen() int64 {
	return s.Kept + s.Dropped + s.Skipped
}

// Merge 合并另一份计数
func (s *Stats) Merge(o Stats) {
	s.Kept += o.Kept
	s.Dropped += o.Dropped
	s.Skipped += o.Skipped
	s.Fingerprint.Merge(o.Fingerprint)
}

// KeepRatio 返回实际保留比例，无记录时为 0
func (s Stats) KeepRatio() float64 {
	n := s.Kept + s.Dropped
	if n == 0 {
		return 0
	}
	return float64(s.Kept) / float64(n)
}

func (s Stats) decisions() xmetrics.Decisions {
	return xmetrics.Decisions{Kept: s.Kept, Dropped: s.Dropped, Skipped: s.Skipped}
}
