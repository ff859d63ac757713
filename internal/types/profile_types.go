package types

// TextFragment 表示PDF文本层输出的一个带坐标的文本片段
// 由外部解码器一次性产出，解析流程只读消费，不做修改
type TextFragment struct {
	Text       string  `json:"text"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FontSize   float64 `json:"font_size"`
	FontFamily string  `json:"font_family"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// LayoutKind 页面布局类型
type LayoutKind string

const (
	// LayoutSingleColumn 单栏布局
	LayoutSingleColumn LayoutKind = "single-column"
	// LayoutTwoColumn 双栏布局（左侧边栏 + 右侧主内容区）
	LayoutTwoColumn LayoutKind = "two-column"
)

// Bounds 一个区域的包围盒
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// LayoutInfo 每份文档检测一次的布局信息，检测后不可变
// 双栏输入时决定哪个x区间属于边栏（联系方式/技能/语言），哪个属于主内容区
type LayoutInfo struct {
	Kind          LayoutKind `json:"kind"`
	SidebarBounds *Bounds    `json:"sidebar_bounds,omitempty"`
	MainBounds    *Bounds    `json:"main_bounds,omitempty"`
}

// LineType 结构化经历分类器给每行打的角色标签
type LineType string

const (
	LineOrganization LineType = "organization"
	LinePosition     LineType = "position"
	LineDuration     LineType = "duration"
	LineLocation     LineType = "location"
	LineDescription  LineType = "description"
	LineOther        LineType = "other"
)

// ClassifiedLine 结构化经历分类器的单行输出
// Confidence 是启发式打分而非概率，仅作为诊断输出，不参与组装阶段的决策
type ClassifiedLine struct {
	Type       LineType `json:"type"`
	Text       string   `json:"text"`
	FontSize   float64  `json:"font_size"`
	Y          float64  `json:"y"`
	Confidence float64  `json:"confidence"`
}

// Contact 联系方式，Email是档案有效性的必要字段
type Contact struct {
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Language 语言及熟练度，熟练度为自由文本，未识别时取"Unknown"
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Position 在某组织任职的一个岗位
type Position struct {
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// WorkExperience 一个组织及其下1..N个岗位，顺序保持PDF中出现顺序
type WorkExperience struct {
	Organization  string     `json:"organization"`
	TotalDuration string     `json:"total_duration,omitempty"`
	Positions     []Position `json:"positions"`
}

// Experience 对外API使用的扁平化经历记录
// 由WorkExperience的岗位逐一展开得到
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education 教育经历记录
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// LinkedInProfile 解析产出的根聚合
// 完整档案必须有非空的Name和Contact.Email，否则解析在组装前即失败
type LinkedInProfile struct {
	Name       string       `json:"name"`
	Headline   string       `json:"headline"`
	Location   string       `json:"location"`
	Contact    Contact      `json:"contact"`
	TopSkills  []string     `json:"top_skills"`
	Languages  []Language   `json:"languages"`
	Summary    string       `json:"summary,omitempty"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// ParseOptions 解析选项
type ParseOptions struct {
	// IncludeRawText 是否在结果中附带提取出的原始文本
	IncludeRawText bool
}

// ParseResult 一次解析调用的完整结果
type ParseResult struct {
	Profile *LinkedInProfile `json:"profile"`
	// DetectedLayout 经历区检出的版式（single-column或two-column）
	DetectedLayout LayoutKind `json:"detected_layout"`
	RawText        string     `json:"raw_text,omitempty"`
}
