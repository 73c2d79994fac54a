// dto.go
package task

// ใช้ตอนสร้าง
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ใช้ตอนแก้ไข (ส่งมาเฉพาะ field ที่จะเปลี่ยน)
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

func (in UpdateTaskInput) patch() Patch {
	return Patch{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
	}
}
