package filesapimodels

type FileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RequestID   string `json:"request_id,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
