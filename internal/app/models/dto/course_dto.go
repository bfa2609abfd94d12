package dto

// CreateCourseRequest is the payload for adding a course
type CreateCourseRequest struct {
	Name       string `json:"name" example:"Data Analysis"`
	Instructor string `json:"instructor" example:"Tunde Bello"`
	Duration   string `json:"duration" example:"12 weeks"`
	Status     string `json:"status,omitempty" example:"Active"`
}

// UpdateCourseRequest is a partial update; absent fields keep their stored value
type UpdateCourseRequest struct {
	Name       *string `json:"name"`
	Instructor *string `json:"instructor"`
	Duration   *string `json:"duration"`
	Status     *string `json:"status"`
}

// CourseListQuery holds list filters
type CourseListQuery struct {
	Search string `form:"search"`
}
