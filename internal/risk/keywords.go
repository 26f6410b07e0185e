package risk

// keywordRule 关键词族 → 标签（可附带升级）
// 匹配为大小写不敏感的子串扫描，规则表是数据，便于独立测试和扩展
type keywordRule struct {
	tag        string
	escalateTo Level // LevelNone = 只打标签不升级
	keywords   []string
}

// delayReasonRules 延误原因关键词族，按优先级排列，最多命中一条
// 词表含英文和波兰文（司机端常用两种语言填写）
var delayReasonRules = []keywordRule{
	{
		tag:        "breakdown",
		escalateTo: LevelMedium,
		keywords:   []string{"breakdown", "break down", "broke down", "mechanical", "engine", "awaria", "usterka"},
	},
	{
		tag:      "traffic",
		keywords: []string{"traffic", "jam", "congestion", "accident", "korek", "korki", "wypadek"},
	},
	{
		tag:      "weather",
		keywords: []string{"weather", "storm", "snow", "rain", "fog", "ice", "pogoda", "snieg", "śnieg"},
	},
	{
		tag:      "customer",
		keywords: []string{"customer", "client", "consignee", "warehouse", "klient", "magazyn"},
	},
}

// cargoTotalLossKeywords 货损全损信号 → HIGH
var cargoTotalLossKeywords = []string{
	"total loss", "destroyed", "write-off", "written off", "unusable", "ruined", "zniszczony",
}

// vehicleImmobilizedKeywords 车辆无法行驶信号 → HIGH
var vehicleImmobilizedKeywords = []string{
	"breakdown", "broke down", "immobilized", "immobilised", "cannot drive",
	"not drivable", "undrivable", "towed", "tow truck", "awaria", "laweta",
}

// blockerImpossibilityKeywords 次日障碍中的"不可行"信号 → MEDIUM
var blockerImpossibilityKeywords = []string{
	"cannot", "can't", "unavailable", "impossible", "unable", "nie moge", "nie mogę", "niedostepny", "niedostępny",
}
