package parser

import "regexp"

// SectionName 档案文档中的逻辑章节名
type SectionName string

const (
	SectionContact        SectionName = "contact"
	SectionTopSkills      SectionName = "topSkills"
	SectionLanguages      SectionName = "languages"
	SectionSummary        SectionName = "summary"
	SectionExperience     SectionName = "experience"
	SectionEducation      SectionName = "education"
	SectionCertifications SectionName = "certifications"
)

// sectionOrder 章节在导出文档中的规范顺序
// 章节定位按此顺序向前扫描，乱序文档会产出错位或空章节，属于格式本身的保真度上限
var sectionOrder = []SectionName{
	SectionContact,
	SectionTopSkills,
	SectionLanguages,
	SectionSummary,
	SectionExperience,
	SectionEducation,
}

// sectionKeywords 规范概念到两种语言环境表层关键词的映射
// 所有分类器共用这一张表，避免每个函数各自维护字面量列表
var sectionKeywords = map[SectionName][]string{
	SectionContact:        {"Contact", "Contato"},
	SectionTopSkills:      {"Top Skills", "Principais competências"},
	SectionLanguages:      {"Languages", "Idiomas"},
	SectionSummary:        {"Summary", "Resumo", "About"},
	SectionExperience:     {"Experience", "Experiência"},
	SectionEducation:      {"Education", "Educação", "Formação acadêmica"},
	SectionCertifications: {"Certifications", "Certificações", "Licenses"},
}

// languageLevels 语言熟练度固定词表，长词在前保证最长匹配优先
var languageLevels = []string{
	"Native or Bilingual",
	"Professional Working",
	"Full Professional",
	"Limited Working",
	"Professional",
	"Elementary",
	"Bilingual",
	"Beginner",
	"Native",
	"Fluent",
	"Working",
}

var (
	// 联系方式
	reEmailGeneric = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	reLinkedIn     = regexp.MustCompile(`(?i)(?:www\.)?linkedin\.com/in/([\w-]+)`)
	// 处理导出PDF里被折行的带连字符的LinkedIn用户名
	reLinkedInWrapped = regexp.MustCompile(`(?i)(?:www\.)?linkedin\.com/in/([\w-]+-)\s*\n\s*([\w-]+)`)
	rePhone           = regexp.MustCompile(`(\+\d{1,3}\s?)?(\(?\d{2,3}\)?[\s-]?)?\d{4,5}[\s-]?\d{4}`)

	// 文本清洗
	rePageNumbers    = regexp.MustCompile(`(?i)Page \d+ of \d+`)
	reMultipleSpaces = regexp.MustCompile(`\s{2,}`)
	reBulletPoints   = regexp.MustCompile(`(?m)^[\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}•·‣⁃]\s*`)
	reLineBreak      = regexp.MustCompile(`\r?\n`)

	// 人名与地点
	reNameStrict   = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)$`)
	reNameLoose    = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+`)
	reNameFallback = regexp.MustCompile(`(?m)(?:^|\n)([A-Z][a-z]+\s+[A-Z][a-z]+)(?:\s|$)`)

	// 日期与年份
	reDateRange = regexp.MustCompile(`(?i)(\w+\s+\d{4})\s*(?:-|–|to|até)\s*(\w+\s+\d{4}|Present|Presente)`)
	reYearToken = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	reYearLine  = regexp.MustCompile(`^(\d{4})(?:\s*[-–]\s*(\d{4}|(?i:present)))?$`)

	// 教育
	reDegreeKeywords = regexp.MustCompile(`(?i)Bachelor|Master|MBA|Degree|Certification|Technician|Associate|Doctorate|PhD|diploma`)
)

// emailProviderWhitelist 常见邮箱服务商白名单
// 优先用白名单裁掉域名后面黏连的噪声字符，再退化到通用域名形状匹配
var emailProviderWhitelist = []string{
	"gmail.com",
	"yahoo.com",
	"yahoo.com.br",
	"hotmail.com",
	"outlook.com",
	"icloud.com",
	"live.com",
	"msn.com",
	"aol.com",
	"protonmail.com",
	"proton.me",
	"uol.com.br",
	"terra.com.br",
	"bol.com.br",
}

// knownCities 地点提取的最终兜底城市表
var knownCities = []string{
	"New York", "San Francisco", "Los Angeles", "Chicago", "Boston",
	"Austin", "Seattle", "London", "Toronto", "Sunnyvale",
	"São Paulo", "Rio de Janeiro",
}
