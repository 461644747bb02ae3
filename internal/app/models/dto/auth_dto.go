package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke on sign-out
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ProbeRequest identifies the session to reconcile. Recovery is set when
// the client arrived through a password-reset link; the pass then reports
// the recovery state instead of reconciling the profile.
type ProbeRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
	Recovery     bool   `json:"recovery"`
}

// RegisterRequest represents an alumni registration request. Everything
// beyond email and password is signup metadata kept on the account for
// later profile reconciliation.
type RegisterRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Course         string `json:"course" binding:"required"`
	GraduationYear *int   `json:"graduationYear,omitempty"`
	CurrentJob     string `json:"currentJob,omitempty" binding:"max=255"`
	Company        string `json:"company,omitempty" binding:"max=255"`
	Location       string `json:"location,omitempty" binding:"max=255"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Message string `json:"message" example:"Registration successful, check your email to verify your account"`
}

// VerifyEmailRequest confirms an email address with a mailed token
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}

// ForgotPasswordRequest starts the password recovery flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password recovery flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required,uuid"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest sets a new password for a signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse represents successful authentication response. Gate is
// populated from the sign-in reconciliation pass.
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
	Gate  *GateResult   `json:"gate,omitempty"`
}

// UserResponse represents basic account information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" example:"ALUMNI" enums:"ALUMNI,ADMIN"`
}
