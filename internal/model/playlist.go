package model

// User is a Spotify account as seen by the downloader.
type User struct {
	ID          string
	DisplayName string
}

// Name returns the display name, or the ID for accounts without one.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.ID
}

// Playlist is a Spotify playlist with the data needed to fetch its cover.
//
// Playlists are read-only snapshots of the API response and are never
// persisted.
type Playlist struct {
	// ID is the Spotify playlist ID.
	ID string

	// Name is the playlist title, used (sanitized) as the cover file name.
	Name string

	// OwnerID is the Spotify user ID of the playlist owner.
	OwnerID string

	// Images lists the available cover renditions in API order.
	Images []ImageRef
}

// HasCover reports whether Spotify returned any cover rendition.
func (p *Playlist) HasCover() bool {
	return len(p.Images) > 0
}

// Credentials holds the Spotify application credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string

	// RedirectURI is only used by the authorization code flow.
	RedirectURI string
}

// DefaultRedirectURI is registered in the Spotify dashboard by the setup
// instructions and used when the config file leaves redirect_uri out.
const DefaultRedirectURI = "http://localhost:8888/callback"
