// Package segtree 提供了线段树家族：静态线段树、懒标记线段树、精确小数线段树与可持久化线段树。
// 所有公开接口均为 0-indexed；内部以扁平数组编码完全二叉树，不分配节点对象。
package segtree

import (
	"math"
)

// Aggregate 线段树结点的聚合函数。
// 任何满足结合律且有单位元的二元运算都可以驱动同一套递归骨架。
type Aggregate int

const (
	AggregateSum Aggregate = iota // 区间和
	AggregateMin                  // 区间最小值
	AggregateMax                  // 区间最大值
	AggregateGCD                  // 区间最大公约数
)

// String 返回聚合函数的名称。
func (f Aggregate) String() string {
	switch f {
	case AggregateSum:
		return "sum"
	case AggregateMin:
		return "min"
	case AggregateMax:
		return "max"
	case AggregateGCD:
		return "gcd"
	default:
		return "unknown"
	}
}

// Identity 返回聚合函数的单位元，即无重叠查询时的返回值。
func (f Aggregate) Identity() int64 {
	switch f {
	case AggregateMin:
		return math.MaxInt64
	case AggregateMax:
		return math.MinInt64
	default:
		return 0
	}
}

// Combine 应用聚合函数合并两个子区间的值。
// 求和不做溢出检测，数值范围由调用方负责。
func (f Aggregate) Combine(a, b int64) int64 {
	switch f {
	case AggregateMin:
		return min(a, b)
	case AggregateMax:
		return max(a, b)
	case AggregateGCD:
		return gcd(a, b)
	default:
		return a + b
	}
}

func (f Aggregate) valid() bool {
	return f >= AggregateSum && f <= AggregateGCD
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
