package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllow(t *testing.T) {
	t.Run("初始容量内的突发放行", func(t *testing.T) {
		tb := NewTokenBucket(60, 3)

		assert.True(t, tb.Allow())
		assert.True(t, tb.Allow())
		assert.True(t, tb.Allow())
	})

	t.Run("令牌耗尽后拒绝", func(t *testing.T) {
		// 速率极低，测试期间不会补进一个完整令牌
		tb := NewTokenBucket(1, 1)

		assert.True(t, tb.Allow())
		assert.False(t, tb.Allow())
	})

	t.Run("未指定容量取QPM的一半", func(t *testing.T) {
		tb := NewTokenBucket(6, 0)

		assert.True(t, tb.Allow())
		assert.True(t, tb.Allow())
		assert.True(t, tb.Allow())
		assert.False(t, tb.Allow())
	})

	t.Run("随时间补充令牌", func(t *testing.T) {
		// 每分钟6000个即每秒100个，50毫秒足够补回一个
		tb := NewTokenBucket(6000, 1)

		assert.True(t, tb.Allow())
		assert.False(t, tb.Allow())

		time.Sleep(50 * time.Millisecond)
		assert.True(t, tb.Allow())
	})
}

func TestTokenBucketWait(t *testing.T) {
	t.Run("有令牌时立即返回", func(t *testing.T) {
		tb := NewTokenBucket(60, 1)

		assert.NoError(t, tb.Wait(context.Background()))
	})

	t.Run("上下文取消时退出等待", func(t *testing.T) {
		tb := NewTokenBucket(1, 1)
		tb.Allow() // 耗尽令牌

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		err := tb.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
