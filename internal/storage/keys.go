package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Key directories
const (
	DirVideos  = "videos"
	DirCovers  = "covers"
	DirAvatars = "avatars"
)

// NewKey builds a collision-free object key, e.g. videos/video_<owner>_<hex>.mp4
func NewKey(dir, prefix string, owner uuid.UUID, ext string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(dir, fmt.Sprintf("%s_%s_%s%s", prefix, owner, hex, strings.ToLower(ext)))
}

// JoinURL joins a public base URL and a key
func JoinURL(base, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
