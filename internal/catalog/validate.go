package catalog

import (
	"strings"

	"openmusic-service/internal/domain"
)

func validateSong(in *domain.SongInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Performer = strings.TrimSpace(in.Performer)
	switch {
	case in.Title == "":
		return domain.Invalid("title is required")
	case in.Year <= 0:
		return domain.Invalid("year must be a positive number")
	case in.Genre == "":
		return domain.Invalid("genre is required")
	case in.Performer == "":
		return domain.Invalid("performer is required")
	case in.Duration != nil && *in.Duration < 0:
		return domain.Invalid("duration must not be negative")
	}
	if in.AlbumID != nil && strings.TrimSpace(*in.AlbumID) == "" {
		in.AlbumID = nil
	}
	return nil
}

func validateAlbum(in *domain.AlbumInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := requireLine("name", in.Name); err != nil {
		return err
	}
	if in.Year <= 0 {
		return domain.Invalid("year must be a positive number")
	}
	return nil
}

func requireField(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.Invalid(name + " is required")
	}
	return nil
}

// requireLine is requireField for values that end up in mail headers.
func requireLine(name, v string) error {
	if err := requireField(name, v); err != nil {
		return err
	}
	if strings.ContainsAny(v, "\r\n") {
		return domain.Invalid(name + " must not contain line breaks")
	}
	return nil
}
