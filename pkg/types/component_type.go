// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// ComponentType 定义可放置到网格上的组件类型
// 封闭枚举：light | airSupply | airReturn | smokeDetector | invalid
type ComponentType int

const (
	// ComponentLight 灯具
	ComponentLight ComponentType = iota
	// ComponentAirSupply 送风口
	ComponentAirSupply
	// ComponentAirReturn 回风口
	ComponentAirReturn
	// ComponentSmokeDetector 烟感探测器
	ComponentSmokeDetector
	// ComponentInvalid 无效区域标记
	// 选中此类型时，放置操作写入 Invalid 格子而不是 Occupied 格子
	ComponentInvalid
)

// AllComponentTypes 按工具栏顺序返回全部组件类型
func AllComponentTypes() []ComponentType {
	return []ComponentType{
		ComponentLight,
		ComponentAirSupply,
		ComponentAirReturn,
		ComponentSmokeDetector,
		ComponentInvalid,
	}
}

// String 返回组件类型的标识字符串（与样式配置文件中的键一致）
func (c ComponentType) String() string {
	switch c {
	case ComponentLight:
		return "light"
	case ComponentAirSupply:
		return "airSupply"
	case ComponentAirReturn:
		return "airReturn"
	case ComponentSmokeDetector:
		return "smokeDetector"
	case ComponentInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ComponentType(%d)", int(c))
	}
}

// IsValid 检查是否为已定义的组件类型
func (c ComponentType) IsValid() bool {
	return c >= ComponentLight && c <= ComponentInvalid
}

// IsMarker 检查是否为无效区域标记类型
func (c ComponentType) IsMarker() bool {
	return c == ComponentInvalid
}

// ParseComponentType 将标识字符串解析为组件类型
func ParseComponentType(s string) (ComponentType, error) {
	for _, c := range AllComponentTypes() {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown component type %q", s)
}
