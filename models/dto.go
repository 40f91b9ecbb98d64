package models

import "time"

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150"`
}

type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,max=150"`
	Email     string   `json:"email" validate:"required,email,max=254"`
	FirstName string   `json:"first_name" validate:"omitempty,max=150"`
	LastName  string   `json:"last_name" validate:"omitempty,max=150"`
	Bio       string   `json:"bio"`
	Role      UserRole `json:"role"`
	Password  string   `json:"password" validate:"omitempty,min=6"`
}

// UpdateUserRequest is a partial update: nil means "leave unchanged".
type UpdateUserRequest struct {
	Username  *string   `json:"username" validate:"omitempty,max=150"`
	Email     *string   `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string   `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string   `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string   `json:"bio"`
	Role      *UserRole `json:"role"`
}

// UserFieldPolicy states which fields a caller may change through a
// given surface. Self-service never touches the role; the admin
// surface may.
type UserFieldPolicy struct {
	AllowRole bool
}

var (
	SelfServicePolicy = UserFieldPolicy{AllowRole: false}
	AdminPolicy       = UserFieldPolicy{AllowRole: true}
)

type UserResponse struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio"`
	Role      UserRole `json:"role"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

type SlugRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50"`
}

type SlugResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Description string   `json:"description"`
	Year        int      `json:"year"`
	Genre       []string `json:"genre" validate:"required,min=1"`
	Category    *string  `json:"category"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Description *string  `json:"description"`
	Year        *int     `json:"year"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// TitleResponse is the denormalized read representation: nested
// category/genre objects plus the computed rating. Rating is null
// until the first review exists.
type TitleResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Year        int            `json:"year"`
	Genre       []SlugResponse `json:"genre"`
	Category    *SlugResponse  `json:"category"`
	Rating      *float64       `json:"rating"`
}

type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required,max=200"`
	Score int    `json:"score"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text" validate:"omitempty,max=200"`
	Score *int    `json:"score"`
}

type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func NewReviewResponse(r *Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=200"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text" validate:"omitempty,max=200"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func NewCommentResponse(cm *Comment) CommentResponse {
	resp := CommentResponse{
		ID:      cm.ID,
		Text:    cm.Text,
		PubDate: cm.PubDate,
	}
	if cm.Author != nil {
		resp.Author = cm.Author.Username
	}
	return resp
}

type ListParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

type TitleListParams struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     *int   `form:"year"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}
