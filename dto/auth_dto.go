package dto

type LoginInput struct {
	Username string `json:"username" binding:"required" example:"johndoe"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RegisterInput struct {
	Name            string `json:"name" example:"John Doe"`
	Email           string `json:"email" example:"john@example.com"`
	Password        string `json:"password" example:"password123"`
	ConfirmPassword string `json:"confirm_password" example:"password123"`
}

type ChangePasswordInput struct {
	OldPassword  string `json:"old_password" binding:"required" example:"oldPass123"`
	NewPassword  string `json:"new_password" binding:"required" example:"newPass123"`
	NewPassword2 string `json:"new_password2" binding:"required" example:"newPass123"`
}
