package admin

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=120"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=120"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile    *string `json:"mobile,omitempty" validate:"omitempty,max=20"`
	Gender    *string `json:"gender,omitempty"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=250"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,max=500"`
}
