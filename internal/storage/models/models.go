package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Person 档案对应的人主表
// 以邮箱作为身份归并的主要依据，同一个人的多次提交共享一条Person记录
type Person struct {
	PersonID        string    `gorm:"type:char(36);primaryKey"`
	PrimaryName     string    `gorm:"type:varchar(255)"`
	PrimaryEmail    string    `gorm:"type:varchar(255);uniqueIndex:idx_persons_primary_email_unique"`
	PrimaryPhone    string    `gorm:"type:varchar(50)"`
	Headline        string    `gorm:"type:varchar(255)"`
	CurrentLocation string    `gorm:"type:varchar(255)"`
	LinkedinURL     string    `gorm:"type:varchar(512)"`
	CreatedAt       time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt       time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Person) TableName() string {
	return "persons"
}

// ProfileSubmission 档案提交/快照表
// 每次上传对应一条记录，解析结果以JSON整体落库
type ProfileSubmission struct {
	SubmissionUUID      string         `gorm:"type:char(36);primaryKey"`
	PersonID            *string        `gorm:"type:char(36);index:idx_ps_person_id"`
	SubmissionTimestamp time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_ps_submission_timestamp"`
	SourceChannel       string         `gorm:"type:varchar(100)"`
	OriginalFilename    string         `gorm:"type:varchar(255)"`
	OriginalFilePathOSS string         `gorm:"type:varchar(1024)"`
	RawTextPathOSS      string         `gorm:"type:varchar(1024)"`
	FileMD5             string         `gorm:"type:char(32);index:idx_ps_file_md5"`
	RawTextMD5          string         `gorm:"type:char(32);index:idx_ps_raw_text_md5"`
	ParsedProfileJSON   datatypes.JSON `gorm:"type:json"`
	ProfileName         string         `gorm:"type:varchar(255)"`
	ProfileEmail        string         `gorm:"type:varchar(255);index:idx_ps_profile_email"`
	DetectedLayout      string         `gorm:"type:varchar(20)"`
	ProcessingStatus    string         `gorm:"type:varchar(50);default:'PENDING_PARSING';index:idx_ps_processing_status"`
	ParseError          string         `gorm:"type:text"`
	ParserVersion       string         `gorm:"type:varchar(50)"`
	CreatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Person *Person `gorm:"foreignKey:PersonID;references:PersonID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (ProfileSubmission) TableName() string {
	return "profile_submissions"
}

// StringToJSON Helper function to convert string to datatypes.JSON
func StringToJSON(s string) datatypes.JSON {
	return datatypes.JSON(s)
}

// MapToJSON Helper function to convert map[string]interface{} to datatypes.JSON
func MapToJSON(m map[string]interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// StructToJSON Helper function to marshal any struct into datatypes.JSON
func StructToJSON(v interface{}) (datatypes.JSON, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
