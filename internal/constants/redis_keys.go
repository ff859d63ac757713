package constants

import "time"

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// FileModulePrefix 文件模块
	FileModulePrefix = "file"
	// ProfileModulePrefix 档案模块
	ProfileModulePrefix = "profile"

	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityMD5ToUUID MD5到UUID的映射实体
	EntityMD5ToUUID = "md5_to_uuid"
	// EntityResult 解析结果实体
	EntityResult = "result"

	// KeyFileMD5Set 文件MD5集合，用于上传去重 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet

	// KeyFileMD5ToSubmissionUUID MD5到SubmissionUUID的映射 (STRING)
	// 格式: app:file:md5_to_uuid:{md5}
	KeyFileMD5ToSubmissionUUID = AppPrefix + ":" + FileModulePrefix + ":" + EntityMD5ToUUID + ":%s"

	// KeyProfileResult 档案解析结果缓存 (STRING, JSON)
	// 格式: app:profile:result:{submissionUUID}
	KeyProfileResult = AppPrefix + ":" + ProfileModulePrefix + ":" + EntityResult + ":%s"

	// DefaultProfileCacheDuration 档案解析结果缓存的默认过期时间
	DefaultProfileCacheDuration = time.Hour
)
