package dto

type UploadView struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}
