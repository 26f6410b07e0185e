package risk

import (
	"fmt"
	"strings"
)

// summaryMaxLen 摘要长度上限（超出部分简单截断并补省略号）
const summaryMaxLen = 200

// happyPathSummary 无异常报告的固定摘要
const happyPathSummary = "Route completed with no reported issues."

// RuleClassifier 规则引擎分类器
// 规则按固定顺序评估，等级只升不降；每条规则是 O(1) 的字符串扫描，
// 整次分类与输入规模无关，耗时有界
type RuleClassifier struct{}

var _ Classifier = (*RuleClassifier)(nil)

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// pass 单次分类的累积状态
type pass struct {
	level   Level
	tags    []string
	seen    map[string]bool
	clauses []string
}

// escalate 升级到至少 min（只升不降）
func (p *pass) escalate(min Level) {
	if min > p.level {
		p.level = min
	}
}

// addTag 去重添加标签
func (p *pass) addTag(tag string) {
	if p.seen[tag] {
		return
	}
	p.seen[tag] = true
	p.tags = append(p.tags, tag)
}

func (p *pass) addClause(clause string) {
	p.clauses = append(p.clauses, clause)
}

func (c *RuleClassifier) Classify(in Input) Assessment {
	p := &pass{level: LevelNone, seen: map[string]bool{}}

	c.evalRouteStatus(p, in)
	c.evalDelay(p, in)
	c.evalCargoDamage(p, in)
	c.evalVehicleDamage(p, in)
	c.evalBlockers(p, in)

	// 兜底：没有任何规则命中且没有延误 → 强制 NONE + 固定摘要
	// 即使上游 is_problem 标记不一致也按无异常处理
	if len(p.tags) == 0 && in.DelayMinutes == 0 && !in.IsProblem {
		return Assessment{Level: LevelNone, Tags: []string{}, Summary: happyPathSummary}
	}

	summary := strings.Join(p.clauses, "; ")
	if summary == "" {
		summary = happyPathSummary
	}
	if len(summary) > summaryMaxLen {
		summary = summary[:summaryMaxLen-3] + "..."
	}

	if p.tags == nil {
		p.tags = []string{}
	}
	return Assessment{Level: p.level, Tags: p.tags, Summary: summary}
}

// evalRouteStatus 规则1-3：路线状态决定起始等级
func (c *RuleClassifier) evalRouteStatus(p *pass, in Input) {
	switch in.RouteStatus {
	case "CANCELLED":
		p.escalate(LevelHigh)
		p.addTag("cancellation")
		p.addClause("Route cancelled")
	case "PARTIALLY_COMPLETED":
		p.escalate(LevelMedium)
		p.addTag("partial")
		p.addClause("Route partially completed")
	}
	// COMPLETED 从 NONE 起步
}

// evalDelay 规则4：延误时长分档 + 延误原因关键词
func (c *RuleClassifier) evalDelay(p *pass, in Input) {
	if in.DelayMinutes <= 0 {
		return
	}

	switch {
	case in.DelayMinutes < 60:
		p.escalate(LevelLow)
	case in.DelayMinutes < 120:
		p.escalate(LevelMedium)
	default:
		p.escalate(LevelHigh)
	}
	p.addTag("delay")
	p.addClause(fmt.Sprintf("Delayed %d min", in.DelayMinutes))

	if in.DelayReason == "" {
		return
	}
	reason := strings.ToLower(in.DelayReason)
	for _, rule := range delayReasonRules {
		if containsAny(reason, rule.keywords) {
			p.addTag(rule.tag)
			if rule.escalateTo > LevelNone {
				p.escalate(rule.escalateTo)
			}
			p.addClause("delay cause: " + rule.tag)
			break // 最多命中一个关键词族
		}
	}
}

// evalCargoDamage 规则5：货物损伤
func (c *RuleClassifier) evalCargoDamage(p *pass, in Input) {
	if in.CargoDamageDescription == "" {
		return
	}
	p.escalate(LevelMedium)
	p.addTag("cargo_damage")
	p.addClause("Cargo damage reported")

	if containsAny(strings.ToLower(in.CargoDamageDescription), cargoTotalLossKeywords) {
		p.escalate(LevelHigh)
	}
}

// evalVehicleDamage 规则6：车辆损伤
func (c *RuleClassifier) evalVehicleDamage(p *pass, in Input) {
	if in.VehicleDamageDescription == "" {
		return
	}
	p.escalate(LevelMedium)
	p.addTag("vehicle_damage")
	p.addClause("Vehicle damage reported")

	if containsAny(strings.ToLower(in.VehicleDamageDescription), vehicleImmobilizedKeywords) {
		p.escalate(LevelHigh)
	}
}

// evalBlockers 规则7：次日障碍（只在路线正常完成时单独计分；
// CANCELLED 本来就是 HIGH，PARTIALLY_COMPLETED 已经 MEDIUM）
func (c *RuleClassifier) evalBlockers(p *pass, in Input) {
	if in.NextDayBlockers == "" || in.RouteStatus != "COMPLETED" {
		return
	}
	p.escalate(LevelLow)
	p.addTag("blocker")
	p.addClause("Next-day blockers flagged")

	if containsAny(strings.ToLower(in.NextDayBlockers), blockerImpossibilityKeywords) {
		p.escalate(LevelMedium)
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
