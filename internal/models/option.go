package models

// Site option names read by the avatar resolver
const (
	OptionShowAvatars             = "show_avatars"
	OptionAvatarDefault           = "avatar_default"
	OptionAvatarRating            = "avatar_rating"
	OptionAvatarDefaultAttachment = "avatar-default-attachment"
)

// Option is a single site-level setting
type Option struct {
	Name  string `json:"name" db:"name"`
	Value string `json:"value" db:"value"`
}
