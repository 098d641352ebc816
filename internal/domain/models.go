package domain

import (
	"time"
)

// Playlist is a named list of songs owned by one user. OwnerID never changes
// after creation.
type Playlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	OwnerID  string `json:"-"`
	Username string `json:"username"`
}

// PlaylistWithSongs is the read model returned by GET /playlists/{id}/songs.
type PlaylistWithSongs struct {
	Playlist
	Songs []SongSummary `json:"songs"`
}

// Collaboration grants a non-owner song add/remove rights on a playlist.
type Collaboration struct {
	ID         string `json:"id"`
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// SongSummary is the short form used in lists.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

type Album struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Year     int           `json:"year"`
	CoverURL *string       `json:"coverUrl"`
	Songs    []SongSummary `json:"songs"`
}

// Like is the presence of a (user, album) pair.
type Like struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	AlbumID string `json:"albumId"`
}

// Action tags an activity. Only ActionAdd and ActionDelete are valid.
type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	return a == ActionAdd || a == ActionDelete
}

// Activity is an immutable audit record of a playlist song mutation.
// Username and Title are resolved on read and may be empty when the
// referenced user or song no longer exists.
type Activity struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlistId"`
	SongID     string    `json:"songId"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	Title      string    `json:"title"`
	Action     Action    `json:"action"`
	Time       time.Time `json:"time"`
}

// ExportJob is the message handed to the export worker. It is never stored.
type ExportJob struct {
	PlaylistID  string `json:"playlistId"`
	RequesterID string `json:"requesterId"`
	TargetEmail string `json:"targetEmail"`
}

// User is owned by the identity service; this service only reads it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// SongInput carries the writable song fields.
type SongInput struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

type AlbumInput struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}
