package model

import "time"

// DefaultProfilePicture is used when a profile is created without one.
const DefaultProfilePicture = "https://images.unsplash.com/photo-1511367461989-f85a21fda167?w=200&h=200&fit=crop"

// Profile represents a user profile in the user database. Exactly one
// profile exists per user ID.
type Profile struct {
	ID                 int64
	UserID             int64
	Name               string
	ProfilePicture     string
	Bio                string
	Location           string
	Twitter            string
	Instagram          string
	Facebook           string
	EmailNotifications bool
	Newsletter         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SocialLinks groups a profile's social media handles.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Preferences groups a profile's notification settings.
type Preferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	Newsletter         bool `json:"newsletter"`
}

// CreateProfileRequest represents a profile creation request. The owning
// user ID comes from the bearer token, not the body.
type CreateProfileRequest struct {
	Name           string       `json:"name"`
	ProfilePicture string       `json:"profilePicture"`
	Bio            string       `json:"bio"`
	Location       string       `json:"location"`
	SocialLinks    *SocialLinks `json:"socialLinks"`
}

// UpdateProfileRequest represents a partial profile update. Only non-nil
// fields are applied; fields outside this allow-list are ignored.
type UpdateProfileRequest struct {
	Name           *string      `json:"name"`
	ProfilePicture *string      `json:"profilePicture"`
	Bio            *string      `json:"bio"`
	Location       *string      `json:"location"`
	SocialLinks    *SocialLinks `json:"socialLinks"`
	Preferences    *Preferences `json:"preferences"`
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	UserID         int64       `json:"userId"`
	Name           string      `json:"name"`
	ProfilePicture string      `json:"profilePicture"`
	Bio            string      `json:"bio,omitempty"`
	Location       string      `json:"location,omitempty"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	Preferences    Preferences `json:"preferences"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// OwnProfileResponse is returned by GET /api/profiles/me: the profile plus
// the user's posts fetched from the blog service.
type OwnProfileResponse struct {
	Profile ProfileResponse `json:"profile"`
	Blogs   []PostResponse  `json:"blogs"`
}

// UpdateProfileResponse is returned by PUT /api/profiles/me.
type UpdateProfileResponse struct {
	Message string          `json:"message"`
	Profile ProfileResponse `json:"profile"`
}

// ToResponse converts a Profile to its API representation.
func (p *Profile) ToResponse() ProfileResponse {
	return ProfileResponse{
		UserID:         p.UserID,
		Name:           p.Name,
		ProfilePicture: p.ProfilePicture,
		Bio:            p.Bio,
		Location:       p.Location,
		SocialLinks: SocialLinks{
			Twitter:   p.Twitter,
			Instagram: p.Instagram,
			Facebook:  p.Facebook,
		},
		Preferences: Preferences{
			EmailNotifications: p.EmailNotifications,
			Newsletter:         p.Newsletter,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
