package storage

import (
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/expomeet/expomeet-server/internal/config"
	"github.com/studio-b12/gowebdav"
)

const (
	maxImageBytes     = 1 << 20 // profile images
	maxFloorplanBytes = 5 << 20
)

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// FileStore keeps uploaded assets on a Nextcloud share over WebDAV.
type FileStore struct {
	client *gowebdav.Client
	root   string
}

func NewFileStore(cfg *config.Config) *FileStore {
	if cfg.NextcloudURL == "" {
		return nil
	}
	c := gowebdav.NewClient(cfg.NextcloudURL, cfg.NextcloudUser, cfg.NextcloudPassword)
	c.SetTimeout(15 * time.Second)
	return &FileStore{client: c, root: cfg.NextcloudRoot}
}

// SaveProfileImage stores a buyer profile image and returns the stored
// file name. The name embeds an upload timestamp so stale CDN caches
// never serve an old photo.
func (s *FileStore) SaveProfileImage(userID uint64, filename string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	name := fmt.Sprintf("buyer_%d_%d%s", userID, time.Now().Unix(), ext)
	dir := path.Join(s.root, "profile_images")
	if err := s.client.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := s.client.Write(path.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// FetchProfileImage returns the stored image as a data URL, or an error
// the caller is expected to swallow into a null field.
func (s *FileStore) FetchProfileImage(name string) (string, error) {
	data, err := s.client.Read(path.Join(s.root, "profile_images", name))
	if err != nil {
		return "", err
	}
	ct := imageContentTypes[strings.ToLower(path.Ext(name))]
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// SaveFloorplan stores the venue floorplan SVG.
func (s *FileStore) SaveFloorplan(data []byte) error {
	if len(data) > maxFloorplanBytes {
		return fmt.Errorf("floorplan exceeds %d bytes", maxFloorplanBytes)
	}
	if err := s.client.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.root, err)
	}
	return s.client.Write(path.Join(s.root, "floorplan.svg"), data, 0644)
}

func (s *FileStore) FetchFloorplan() ([]byte, error) {
	return s.client.Read(path.Join(s.root, "floorplan.svg"))
}
