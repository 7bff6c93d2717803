package employee

type CreateEmployeeRequest struct {
	Name             string  `json:"name" binding:"required,max=150"`
	Position         string  `json:"position" binding:"required,max=100"`
	Phone            string  `json:"phone" binding:"required,max=30"`
	ProfileImagePath *string `json:"profile_image_path" binding:"omitempty,max=255"`
}

type UpdateEmployeeRequest struct {
	Name             string  `json:"name" binding:"required,max=150"`
	Position         string  `json:"position" binding:"required,max=100"`
	Phone            string  `json:"phone" binding:"required,max=30"`
	ProfileImagePath *string `json:"profile_image_path" binding:"omitempty,max=255"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	Phone            string  `json:"phone"`
	ProfileImagePath *string `json:"profile_image_path"`
}

type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
