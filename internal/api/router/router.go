package router

import (
	"context"
	"errors"

	"profile-parser-go/internal/api/handler"
	"profile-parser-go/internal/parser"
	"profile-parser-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, profileHandler *handler.ProfileHandler) {
	api := h.Group("/api/v1")

	// 异步上传：入MinIO、发消息，解析由消费者完成
	api.POST("/profile/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("pdf")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到，请使用表单字段pdf上传"})
			return
		}

		sourceChannel := ctx.PostForm("source_channel")
		if sourceChannel == "" {
			sourceChannel = "web_upload" // 默认值
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := profileHandler.HandleProfileUpload(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			sourceChannel,
		)
		if err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusInternalServerError)
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// 同步解析：直接返回解析出的档案，不落库
	api.POST("/profile/parse", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("pdf")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{
				"success": false,
				"error":   "文件未找到，请使用表单字段pdf上传",
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{
				"success": false,
				"error":   "打开文件失败",
			})
			return
		}
		defer file.Close()

		result, err := profileHandler.HandleSyncParse(c, file, fileHeader.Filename)
		if err != nil {
			// 内容层面的失败归为客户端错误
			status := consts.StatusInternalServerError
			if errors.Is(err, parser.ErrUnreadableInput) || errors.Is(err, parser.ErrIncompleteProfile) {
				status = consts.StatusBadRequest
			}
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, status)
			ctx.JSON(status, utils.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}

		ctx.JSON(consts.StatusOK, utils.H{
			"success": true,
			"data":    result,
		})
	})

	// 查询一次提交的解析结果
	api.GET("/profile/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resp, err := profileHandler.HandleGetProfile(c, submissionUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "档案提交记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
