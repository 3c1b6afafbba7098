package news

import "strings"

// categoryRule pairs a taxonomy category with the title keywords that select
// it. The slice order is part of the contract: several keyword sets overlap
// (태양광/풍력 also appear under 재생에너지), and the first matching rule wins.
type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{"한전", []string{"한전", "한국전력", "KEPCO"}},
	{"SMR", []string{"SMR", "소형모듈원자로", "소형원자로"}},
	{"원전", []string{"원전", "원자력", "핵발전", "원자력발전소", "원자로"}},
	{"송전", []string{"송전", "송전선", "송전망", "전력망", "송배전"}},
	{"ESS", []string{"ESS", "에너지저장장치", "배터리", "저장시스템"}},
	{"정전", []string{"정전", "전력공급", "전기공급", "블랙아웃"}},
	{"전력망", []string{"전력망", "전력계통", "전력시스템", "그리드"}},
	{"열병합", []string{"열병합", "열병합발전", "CHP"}},
	{"풍력", []string{"풍력", "풍력발전", "해상풍력", "육상풍력"}},
	{"태양광", []string{"태양광", "태양광발전", "솔라", "PV"}},
	{"RE100", []string{"RE100", "재생에너지100", "재생에너지"}},
	{"수소", []string{"수소", "수소경제", "연료전지", "그린수소", "블루수소"}},
	{"암모니아", []string{"암모니아", "NH3", "암모니아연료"}},
	{"LNG", []string{"LNG", "액화천연가스", "가스터미널"}},
	{"재생에너지", []string{"재생에너지", "신재생", "태양광", "풍력", "수력"}},
	{"석유화학", []string{"석유화학", "정유", "화학", "플라스틱"}},
	{"원유", []string{"원유", "유가", "석유", "OPEC"}},
}

// affinityKeywords signal topical affinity to the organization; each match
// raises the computed relevance score by one step.
var affinityKeywords = []string{"GS", "E&R", "에너지", "자원"}

const (
	baseScore     = 70
	scorePerMatch = 10
	maxScore      = 100
)

// Categorize assigns a taxonomy category to a title. An explicit upstream
// category wins unless it is empty or the 기타 fallback; otherwise the first
// rule with a keyword substring match in the title decides.
func Categorize(title, explicit string) string {
	if explicit != "" && explicit != DefaultCategory {
		return explicit
	}
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(title, keyword) {
				return rule.name
			}
		}
	}
	return DefaultCategory
}

// RelevanceScore computes a score from organization-affinity keyword matches
// in the title. The result is capped at 100.
func RelevanceScore(title string) int {
	matches := 0
	for _, keyword := range affinityKeywords {
		if strings.Contains(title, keyword) {
			matches++
		}
	}
	score := baseScore + scorePerMatch*matches
	if score > maxScore {
		return maxScore
	}
	return score
}

// ClampScore forces an upstream-provided score into the [0, 100] range.
// Observed payloads stay in range, but nothing upstream enforces it.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
