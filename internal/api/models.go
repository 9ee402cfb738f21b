package api

// SignupRequest is the body of POST /signup. Omitted profile fields take
// their defaults.
type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"omitempty,notblank,min=2,max=30"`
	About    string `json:"about"    validate:"omitempty,notblank,min=2,max=200"`
	Avatar   string `json:"avatar"   validate:"omitempty,http_url"`
}

// SigninRequest is the body of POST /signin.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful signin.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest is the body of PATCH /users/me. A field left out of
// the body is not changed.
type UpdateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitnil,notblank,min=2,max=30"`
	About *string `json:"about" validate:"omitnil,notblank,min=2,max=200"`
}

// UpdateAvatarRequest is the body of PATCH /users/me/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,http_url"`
}

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	Name string `json:"name" validate:"required,notblank,min=2,max=30"`
	Link string `json:"link" validate:"required,http_url"`
}

// CardDeletedMessage confirms a successful DELETE /cards/{cardId}.
const CardDeletedMessage = "Card deleted successfully"
