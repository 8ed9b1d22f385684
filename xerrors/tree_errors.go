package xerrors

var (
	// ErrIndexOutOfRange 索引超出结构的有效下标域。
	ErrIndexOutOfRange = New(ErrInvalidArg, 400101, "index out of range", "index must be within the structure's configured size", nil)
	// ErrInvalidRange 区间边界非法 (下界大于上界，或越过下标域)。
	ErrInvalidRange = New(ErrInvalidArg, 400102, "invalid range", "range bounds must satisfy lower <= upper and lie within the index domain", nil)
	// ErrEmptyData 构建输入为空。
	ErrEmptyData = New(ErrInvalidArg, 400103, "empty data", "initial array must not be empty", nil)
	// ErrInvalidLength 逻辑长度必须为正。
	ErrInvalidLength = New(ErrInvalidArg, 400104, "invalid length", "structure size must be positive", nil)
	// ErrInvalidAggregate 未知的聚合函数。
	ErrInvalidAggregate = New(ErrInvalidArg, 400105, "invalid aggregate", "supported aggregates: sum, min, max, gcd", nil)
	// ErrVersionNotFound 持久化结构中不存在该版本。
	ErrVersionNotFound = New(ErrNotFound, 404101, "version not found", "requested version has not been created", nil)
)
