package guildconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"lunar-assistant/core/rules"
	"lunar-assistant/core/storage"

	"github.com/minio/minio-go/v7"
)

// maxDocumentBytes caps the size of a stored configuration.
const maxDocumentBytes = 1 << 20

// ObjectStore keeps one JSON object per community at {prefix}/{guildID}.json.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates an object storage backed store.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key of a community's document.
func (s *ObjectStore) Key(guildID string) string {
	return path.Join(s.prefix, guildID+".json")
}

// Prefix returns the key prefix documents are stored under.
func (s *ObjectStore) Prefix() string { return s.prefix }

func (s *ObjectStore) Get(ctx context.Context, guildID string) (*rules.GuildConfig, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.Key(guildID), minio.GetObjectOptions{})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rules of guild %s: %w", guildID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentBytes))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rules of guild %s: %w", guildID, err)
	}

	var cfg rules.GuildConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, false, fmt.Errorf("malformed rules document for guild %s: %w", guildID, err)
	}
	return &cfg, true, nil
}

func (s *ObjectStore) Put(ctx context.Context, guildID string, cfg *rules.GuildConfig) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.Key(guildID), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to write rules of guild %s: %w", guildID, err)
	}
	return nil
}

// encode writes a non-nil rule list so an emptied configuration stays
// distinguishable from a missing one.
func encode(cfg *rules.GuildConfig) ([]byte, error) {
	out := rules.GuildConfig{Rules: cfg.Rules}
	if out.Rules == nil {
		out.Rules = []rules.GuildRule{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return data, nil
}
