package risk

// Level 风险等级，有序：NONE < LOW < MEDIUM < HIGH
// 一次分类过程中等级只会上升，不会下降
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "LOW"
	case LevelMedium:
		return "MEDIUM"
	case LevelHigh:
		return "HIGH"
	default:
		return "NONE"
	}
}

// ParseLevel 从存储值还原等级（未知值按 NONE 处理）
func ParseLevel(s string) Level {
	switch s {
	case "LOW":
		return LevelLow
	case "MEDIUM":
		return LevelMedium
	case "HIGH":
		return LevelHigh
	default:
		return LevelNone
	}
}

// Input 分类输入（报告内容的只读快照）
type Input struct {
	RouteStatus              string
	DelayMinutes             int
	DelayReason              string
	CargoDamageDescription   string
	VehicleDamageDescription string
	NextDayBlockers          string
	IsProblem                bool
}

// Assessment 分类结果
// Tags 去重（集合语义），Summary 不超过 200 字符
type Assessment struct {
	Level   Level
	Tags    []string
	Summary string
}

// Classifier 报告风险分类器
// 注入接口而非环境变量开关，便于替换实现（规则引擎 / 外部模型）
type Classifier interface {
	Classify(in Input) Assessment
}
