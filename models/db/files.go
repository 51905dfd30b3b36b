package dbmodels

type FileStorage struct {
	BaseSpaceModel
	Name        string `gorm:"type:varchar(255)"`
	TimesheetID string `gorm:"index"`
	Type        FileType `gorm:"type:varchar(50)"`
	ContentType string   `gorm:"type:varchar(100)"`
}

type FileType string

const (
	TimesheetDocument FileType = "timesheet_document"
	UserProfilePhoto  FileType = "user_profile_photo"
	CompanyLogo       FileType = "company_logo"
)

type UploadFileInfo struct {
	SpaceID     string
	TimesheetID string
	FileName    string
	FileType    FileType
	ContentType string
}
