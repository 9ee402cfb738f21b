package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile defaults applied when a field is omitted at signup.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered user of the service.
// Only public fields are serialized; the password hash never leaves the server.
type User struct {
	ID             uuid.UUID `json:"_id"`
	Email          string    `json:"email"     validate:"required,email,max=254"`
	Name           string    `json:"name"      validate:"required,notblank,min=2,max=30"`
	About          string    `json:"about"     validate:"required,notblank,min=2,max=200"`
	Avatar         string    `json:"avatar"    validate:"required,http_url"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a User with a fresh identity, applying profile defaults for
// empty optional fields. The email is normalised to lower case.
//
// The caller is responsible for hashing the password and setting HashedPassword
// before the user is stored.
func NewUser(email, name, about, avatar string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Name:      withDefault(name, DefaultUserName),
		About:     withDefault(about, DefaultUserAbout),
		Avatar:    withDefault(avatar, DefaultUserAvatar),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the public fields of the user.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("_id", "is required", ErrInvalidID)
	}
	return ValidateStruct(u)
}

// NormalizeEmail trims and lower-cases an email address so that uniqueness
// does not depend on letter case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// withDefault substitutes def only for an omitted field. A whitespace-only
// value is kept so validation rejects it.
func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// ProfileUpdate is a partial change to a user's name and about fields.
// A nil field is left unchanged.
type ProfileUpdate struct {
	Name  *string `json:"name"  validate:"omitnil,notblank,min=2,max=30"`
	About *string `json:"about" validate:"omitnil,notblank,min=2,max=200"`
}

// Validate checks the fields present in the update.
func (p ProfileUpdate) Validate() error {
	return ValidateStruct(p)
}

// ValidateAvatar checks that avatar is an absolute URL.
func ValidateAvatar(avatar string) error {
	return ValidateStruct(struct {
		Avatar string `json:"avatar" validate:"required,http_url"`
	}{Avatar: avatar})
}
