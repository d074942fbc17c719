package handlers

// RegisterParam multipart 表单中的文本字段，avatar、coverImage 为文件
type RegisterParam struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	FullName string `form:"fullName" json:"fullName"`
	Password string `form:"password" json:"password"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

// UpdateAccountParam 缺省字段不修改
type UpdateAccountParam struct {
	FullName *string `json:"fullName" form:"fullName"`
	Email    *string `json:"email" form:"email"`
}
