package processor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileProcessError(t *testing.T) {
	t.Run("带详情的错误格式", func(t *testing.T) {
		err := NewDownloadError("uuid-123", "对象不存在")
		assert.Equal(t, "下载档案PDF失败 (操作:download, UUID:uuid-123): 对象不存在", err.Error())
	})

	t.Run("无详情的错误格式", func(t *testing.T) {
		err := &ProfileProcessError{
			SubmissionUUID: "uuid-123",
			Op:             "parse",
			BaseErr:        ErrProfileParseFailed,
		}
		assert.Equal(t, "解析档案失败 (操作:parse, UUID:uuid-123)", err.Error())
	})

	t.Run("errors.Is命中基础错误", func(t *testing.T) {
		assert.ErrorIs(t, NewParseError("uuid-123", "文本过短"), ErrProfileParseFailed)
		assert.ErrorIs(t, NewPublishError("uuid-123", "连接断开"), ErrPublishMessageFailed)
		assert.NotErrorIs(t, NewStoreError("uuid-123", ""), ErrProfileParseFailed)
	})

	t.Run("errors.As取回结构化字段", func(t *testing.T) {
		var pErr *ProfileProcessError
		assert.ErrorAs(t, NewUpdateError("uuid-456", "记录不存在"), &pErr)
		assert.Equal(t, "uuid-456", pErr.SubmissionUUID)
		assert.Equal(t, "update", pErr.Op)
	})
}

func TestErrorConstructorOps(t *testing.T) {
	cases := []struct {
		err  error
		base error
		op   string
	}{
		{NewDownloadError("u", "d"), ErrProfileDownloadFailed, "download"},
		{NewParseError("u", "d"), ErrProfileParseFailed, "parse"},
		{NewStoreError("u", "d"), ErrStoreRawTextFailed, "store"},
		{NewPublishError("u", "d"), ErrPublishMessageFailed, "publish"},
		{NewUpdateError("u", "d"), ErrUpdateStatusFailed, "update"},
		{NewDatabaseError("u", "d"), ErrDatabaseFailed, "database"},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.base)

		var pErr *ProfileProcessError
		if errors.As(tc.err, &pErr) {
			assert.Equal(t, tc.op, pErr.Op)
		}
	}
}
