package dto

type Tale struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type TaleSummary struct {
	Title string `json:"title"`
}
