package dto

// LoginRequest is the admin login form
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ChangePasswordRequest is the admin password change form
type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" json:"currentPassword" binding:"required"`
	NewPassword     string `form:"new_password" json:"newPassword" binding:"required"`
}
