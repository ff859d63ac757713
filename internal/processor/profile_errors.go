package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrProfileDownloadFailed = errors.New("下载档案PDF失败")
	ErrProfileParseFailed    = errors.New("解析档案失败")
	ErrStoreRawTextFailed    = errors.New("上传原始文本失败")
	ErrPublishMessageFailed  = errors.New("发布解析完成消息失败")
	ErrUpdateStatusFailed    = errors.New("更新档案状态失败")
	ErrDatabaseFailed        = errors.New("数据库操作失败")
)

// ProfileProcessError 包含详细错误信息的自定义错误
type ProfileProcessError struct {
	SubmissionUUID string
	Op             string
	BaseErr        error
	Detail         string
}

func (e *ProfileProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.SubmissionUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.SubmissionUUID)
}

func (e *ProfileProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ProfileProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewDownloadError(uuid, detail string) error {
	return &ProfileProcessError{
		SubmissionUUID: uuid,
		Op:             "download",
		BaseErr:        ErrProfileDownloadFailed,
		Detail:         detail,
	}
}

func NewParseError(uuid, detail string) error {
	return &ProfileProcessError{
		SubmissionUUID: uuid,
		Op:             "parse",
		BaseErr:        ErrProfileParseFailed,
		Detail:         detail,
	}
}

func NewStoreError(uuid, detail string) error {
	return &ProfileProcessError{
		SubmissionUUID: uuid,
		Op:             "store",
		BaseErr:        ErrStoreRawTextFailed,
		Detail:         detail,
	}
}

func NewPublishError(uuid, detail string) error {
	return &ProfileProcessError{
		SubmissionUUID: uuid,
		Op:             "publish",
		BaseErr:        ErrPublishMessageFailed,
		Detail:         detail,
	}
}

func NewUpdateError(uuid, detail string) error {
	return &ProfileProcessError{
		SubmissionUUID: uuid,
		Op:             "update",
		BaseErr:        ErrUpdateStatusFailed,
		Detail:         detail,
	}
}

func NewDatabaseError(uuid, detail string) error {
	return &ProfileProcessError{
		SubmissionUUID: uuid,
		Op:             "database",
		BaseErr:        ErrDatabaseFailed,
		Detail:         detail,
	}
}
