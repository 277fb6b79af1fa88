package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"texture-matcher/config"
	"texture-matcher/internal/core/texture"
	"texture-matcher/pkg/logger"
	s3client "texture-matcher/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Catalog is the candidate list plus the queries a batch run goes through.
type Catalog struct {
	Candidates []texture.Candidate `json:"candidates"`
	Queries    []string            `json:"queries"`
}

type fileCandidate struct {
	Name string `koanf:"name"`
}

type fileCatalog struct {
	Candidates []fileCandidate `koanf:"candidates"`
	Queries    []string        `koanf:"queries"`
}

// ObjectGetter is the S3 call Load needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// bytesProvider feeds an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("catalog: bytes provider does not support Read")
}

// Load reads a YAML catalog from a path or an s3:// URL. An empty source,
// or an empty section in the file, falls back to the defaults. objects may
// be nil when source is a local path.
func Load(ctx context.Context, source string, objects ObjectGetter) (Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Default(), nil
	}

	var provider koanf.Provider
	if s3client.IsURL(source) {
		if objects == nil {
			return Catalog{}, fmt.Errorf("%v: %s needs an s3 client", config.ModuleCatalog, source)
		}
		body, err := fetchObject(ctx, objects, source)
		if err != nil {
			return Catalog{}, err
		}
		provider = bytesProvider(body)
	} else {
		provider = file.Provider(source)
	}

	k := koanf.New(".")
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return Catalog{}, fmt.Errorf("%v: read %s: %w", config.ModuleCatalog, source, err)
	}
	var fc fileCatalog
	if err := k.Unmarshal("", &fc); err != nil {
		return Catalog{}, fmt.Errorf("%v: decode %s: %w", config.ModuleCatalog, source, err)
	}

	cat := Catalog{Queries: fc.Queries}
	for _, c := range fc.Candidates {
		cat.Candidates = append(cat.Candidates, texture.Candidate{Name: c.Name})
	}
	if len(cat.Candidates) == 0 {
		cat.Candidates = DefaultCandidates()
	}
	if len(cat.Queries) == 0 {
		cat.Queries = DefaultQueries()
	}

	logger.ForModule(config.ModuleCatalog).WithFields(map[string]interface{}{
		"source":     source,
		"candidates": len(cat.Candidates),
		"queries":    len(cat.Queries),
	}).Info("catalog: loaded")
	return cat, nil
}

func fetchObject(ctx context.Context, objects ObjectGetter, source string) ([]byte, error) {
	bucket, key, err := s3client.ParseURL(source)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", config.ModuleCatalog, err)
	}
	out, err := objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%v: get %s: %w", config.ModuleCatalog, source, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%v: read %s: %w", config.ModuleCatalog, source, err)
	}
	return body, nil
}

// newObjectGetter is swapped out in tests.
var newObjectGetter = func(ctx context.Context, s3cfg config.S3Config) (ObjectGetter, error) {
	return s3client.GetClient(ctx, s3cfg)
}

// Open loads cfg.Matcher.Catalog, creating an S3 client only for s3:// sources.
func Open(ctx context.Context, cfg config.Config) (Catalog, error) {
	source := strings.TrimSpace(cfg.Matcher.Catalog)
	var objects ObjectGetter
	if s3client.IsURL(source) {
		cli, err := newObjectGetter(ctx, cfg.S3)
		if err != nil {
			return Catalog{}, fmt.Errorf("%v: s3 client: %w", config.ModuleCatalog, err)
		}
		objects = cli
	}
	return Load(ctx, source, objects)
}
