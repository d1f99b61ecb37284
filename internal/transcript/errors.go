package transcript

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmptyWindow means no transcript text overlaps the requested window.
var ErrEmptyWindow = errors.New("no transcript found in specified range")

type FetchErrorKind string

const (
	KindDisabled         FetchErrorKind = "disabled"
	KindNoTranscript     FetchErrorKind = "unavailable"
	KindVideoUnavailable FetchErrorKind = "video_missing"
	KindOther            FetchErrorKind = "other"
)

// FetchError is a failure to obtain any transcript for a video.
type FetchError struct {
	Kind    FetchErrorKind
	VideoID string
	Message string
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindDisabled:
		return "transcripts are disabled for this video"
	case KindNoTranscript:
		return "no transcript available for this video"
	case KindVideoUnavailable:
		return "video is unavailable or does not exist"
	default:
		return fmt.Sprintf("error fetching transcript: %s", e.Message)
	}
}

// AsFetchError unwraps err into a *FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	ok := errors.As(err, &fe)
	return fe, ok
}

// classify maps a transcript source's reason code or free-text message onto a kind.
func classify(reason, message string) FetchErrorKind {
	switch strings.ToLower(reason) {
	case "transcripts_disabled", "disabled":
		return KindDisabled
	case "no_transcript", "no_transcript_found":
		return KindNoTranscript
	case "video_unavailable", "not_found":
		return KindVideoUnavailable
	}
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "transcript") && strings.Contains(msg, "disabled"):
		return KindDisabled
	case strings.Contains(msg, "no transcript"):
		return KindNoTranscript
	case strings.Contains(msg, "video unavailable"):
		return KindVideoUnavailable
	default:
		return KindOther
	}
}

// kindForStatus is used when the response body says nothing more specific.
func kindForStatus(status int) FetchErrorKind {
	switch status {
	case http.StatusNotFound, http.StatusGone:
		return KindVideoUnavailable
	default:
		return KindOther
	}
}
