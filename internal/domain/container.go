package domain

// ContainerID 楼层编辑器的三个固定容器
type ContainerID string

const (
	Pending ContainerID = "pending" // Pending Locations：待放置列表
	Canvas  ContainerID = "canvas"  // Virtual Floor Plan：自由摆放的画布
	Palette ContainerID = "palette" // Components：组件模板面板
)

// AllContainers 渲染顺序（左到右）
var AllContainers = []ContainerID{Pending, Canvas, Palette}

// IsContainerID 判断字符串是否为容器 id（容器与条目共享同一个 id 空间）
func IsContainerID(id string) bool {
	switch ContainerID(id) {
	case Pending, Canvas, Palette:
		return true
	}
	return false
}

func (c ContainerID) String() string { return string(c) }
