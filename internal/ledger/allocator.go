package ledger

import "wisefido-floorplan/internal/domain"

// NextAvailable 从 id 的序号开始递增，返回所有容器里都不存在的第一个 "<kind>-<m>"（m >= n）
// 没有数字序号的 id 视为 "<id>-1" 起步
func NextAvailable(c Containers, id string) string {
	kind, serial, ok := domain.SplitID(id)
	if !ok {
		if !c.Contains(id) && !domain.IsContainerID(id) {
			return id
		}
		kind, serial = id, 1
	}
	for {
		candidate := domain.FormatID(kind, serial)
		if !c.Contains(candidate) {
			return candidate
		}
		serial++
	}
}
