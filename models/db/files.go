package dbmodels

import filesapimodels "procurement-tools-backend/models/api/files"

type FileStorage struct {
	BaseModel
	Name        string
	RequestID   string `gorm:"type:varchar(36);index"`
	ItemID      string `gorm:"type:varchar(36);index"`
	Type        FileType
	ContentType string
	Size        int64
}

func (f FileStorage) ToModel() filesapimodels.FileView {
	return filesapimodels.FileView{
		ID:          f.ID,
		Name:        f.Name,
		RequestID:   f.RequestID,
		ItemID:      f.ItemID,
		ContentType: f.ContentType,
		Size:        f.Size,
	}
}

type FileType string

const (
	RequestItemsList    FileType = "request_items_list"    // файл со списком позиций
	RequestCompletion   FileType = "request_completion"    // файл при завершении заявки
	RequestDocument     FileType = "request_document"      // печатная форма
	ItemEvidence        FileType = "item_evidence"         // подтверждение по позиции
)

type UploadFileInfo struct {
	RequestID   string
	ItemID      string
	FileName    string
	FileType    FileType
	ContentType string
}
