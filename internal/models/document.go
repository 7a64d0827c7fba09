package models

type Document struct {
	Base
	UserID   string `gorm:"type:varchar(36);index;not null" json:"userId"`
	FileName string `gorm:"size:255;not null" json:"fileName"` // original upload name
	FilePath string `gorm:"size:1024;not null" json:"filePath"`
	FileType string `gorm:"size:10;not null" json:"fileType"` // txt, pdf, docx
}
