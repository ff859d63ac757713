package constants

// 应用级常量
const (
	// DefaultParserVersion 默认解析器版本标识，随档案记录落库
	DefaultParserVersion = "heuristic-v1"

	// 提交记录的处理状态
	StatusPendingParsing = "PENDING_PARSING" // 已上传，等待解析
	StatusParsing        = "PARSING"         // 解析中
	StatusParsed         = "PARSED"          // 解析完成
	StatusParseFailed    = "PARSE_FAILED"    // 解析失败（基础设施或内部错误）
	StatusInvalidInput   = "INVALID_INPUT"   // 输入不可解析或档案不完整
)
