package topic

type Topic struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryId"`
	Position   int    `json:"position"`
}
