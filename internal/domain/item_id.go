package domain

import (
	"strconv"
	"strings"
)

// 条目 id 格式："<kind>-<serial>"，如 "Room-3"、"Nurse Station-1"

// SplitID 拆分 id；没有数字序号时 ok=false，kind 为整个 id
func SplitID(id string) (kind string, serial int, ok bool) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return id, 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return id, 0, false
	}
	return id[:i], n, true
}

// Kind 返回 id 的类型前缀
func Kind(id string) string {
	kind, _, _ := SplitID(id)
	return kind
}

// FormatID builds "<kind>-<serial>".
func FormatID(kind string, serial int) string {
	return kind + "-" + strconv.Itoa(serial)
}

// Serial 返回 id 的数字序号
func Serial(id string) (int, bool) {
	_, n, ok := SplitID(id)
	return n, ok
}
