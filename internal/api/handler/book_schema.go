package handler

// --- Request / Response types ---

type registerBookRequest struct {
	Kind        string `json:"kind"         validate:"required,oneof=physical digital"`
	Title       string `json:"title"        validate:"required"`
	Author      string `json:"author"       validate:"required"`
	ISBN        string `json:"isbn"         validate:"required"`
	TotalCopies int    `json:"total_copies" validate:"gte=0"`
}

type updateBookRequest struct {
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author" validate:"required"`
	// TotalCopies is required for physical books and ignored for digital ones.
	TotalCopies *int `json:"total_copies,omitempty" validate:"omitempty,gte=0"`
}

type bookResponse struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Kind            string `json:"kind"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	Available       bool   `json:"available"`
}

type bookListResponse struct {
	Data []bookResponse `json:"data"`
}
