package xsampling

import (
	"bytes"
	"crypto"
	"crypto/sha1" //nolint:gosec // 采样不需要抗碰撞，SHA-1 是与历史数据对齐所必需的
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// sha1ABC 是 FIPS 180 中 "abc" 的 SHA-1 测试向量
var sha1ABC = []byte{
	0xa9, 0x99, 0x3e, 0x36, 0x47, 0x06, 0x81, 0x6a, 0xba, 0x3e,
	0x25, 0x71, 0x78, 0x50, 0xc2, 0x6c, 0x9c, 0xd0, 0xd8, 0x9d,
}

// digestReady 在进程内只做一次摘要算法自检
var digestReady = sync.OnceValue(checkDigest)

// checkDigest 确认运行环境可以计算 SHA-1 且结果正确。
//
// 设计决策: 摘要算法是否可用取决于运行环境而不是数据，
// 因此在构造采样器时检查一次，而不是在每条记录上报错。
// 在只允许 FIPS 认可算法的模式下 SHA-1 可能 panic，这里统一转成错误。
func checkDigest() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDigestUnavailable, r)
		}
	}()

	if !crypto.SHA1.Available() {
		return ErrDigestUnavailable
	}
	h := crypto.SHA1.New()
	h.Write([]byte("abc"))
	if !bytes.Equal(h.Sum(nil), sha1ABC) {
		return fmt.Errorf("%w: self-test mismatch", ErrDigestUnavailable)
	}
	return nil
}

// Expand 把 (seed, inputHash) 展开为一个确定性的伪随机浮点数。
//
// 计算步骤：
//  1. 8 字节缓冲区：前 4 字节为 seed 的大端编码，后 4 字节为 inputHash 的大端编码
//  2. 计算缓冲区的 SHA-1 摘要
//  3. 摘要前 4 字节按大端解释为有符号 int32 d
//  4. 返回 ((d / MaxInt32) + 1) / 2
//
// 结果落在 [-0.5/MaxInt32, 1.0]。d == MinInt32 时结果略小于 0，
// 这是为了与历史数据逐位一致而保留的行为，不做截断。
//
// Expand 假定 SHA-1 可用；构造 [KeySampler] 时已完成检查。零分配。
func Expand(seed, inputHash int32) float64 {
	return normalize(Digest(seed, inputHash))
}

// Digest 返回 Expand 第 3 步得到的有符号 int32，用于诊断输出和一致性核对
func Digest(seed, inputHash int32) int32 {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(seed))
	binary.BigEndian.PutUint32(buf[4:8], uint32(inputHash))
	digest := sha1.Sum(buf[:]) //nolint:gosec // 见 import 注释
	return int32(binary.BigEndian.Uint32(digest[:4]))
}

// normalize 把有符号 int32 仿射映射到约 [0, 1]
func normalize(d int32) float64 {
	return (float64(d)/math.MaxInt32 + 1) / 2
}

// Decide 返回 expanded <= rate。
//
// 不对 rate <= 0 或 rate >= 1 做短路，保证边界行为与 Expand 的取值范围一致。
func Decide(expanded, rate float64) bool {
	return expanded <= rate
}
