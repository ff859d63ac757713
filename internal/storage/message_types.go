package storage

import "time"

// ProfileUploadMessage 档案上传消息
// 由上传接口发布，解析消费者消费
type ProfileUploadMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`          // 提交UUID，主键
	SubmissionTimestamp time.Time `json:"submission_timestamp"`     // 提交时间戳
	SourceChannel       string    `json:"source_channel,omitempty"` // 来源渠道
	OriginalFilename    string    `json:"original_filename"`        // 原始文件名
	OriginalFilePathOSS string    `json:"original_file_path_oss"`   // MinIO中的对象路径
	RawFileMD5          string    `json:"raw_file_md5,omitempty"`   // 原始文件的MD5，用于失败时回滚
}

// ProfileParsedMessage 档案解析完成消息
// 解析消费者处理完成后发布，供下游系统订阅
type ProfileParsedMessage struct {
	SubmissionUUID   string `json:"submission_uuid"`             // 提交UUID
	ProcessingStatus string `json:"processing_status"`           // 处理状态
	RawTextPathOSS   string `json:"raw_text_path_oss,omitempty"` // 原始文本在MinIO中的路径
	ProfileName      string `json:"profile_name,omitempty"`      // 解析出的姓名
	DetectedLayout   string `json:"detected_layout,omitempty"`   // 检测到的布局类型
	ProcessingTime   int64  `json:"processing_time,omitempty"`   // 处理时间戳
	Error            string `json:"error,omitempty"`             // 错误信息
}
