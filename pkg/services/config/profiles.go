package config

import (
	"context"
	"fmt"

	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

const defaultProfile = "default"

// S3Profile is one section of the S3 profile file, e.g.
//
//	[minio]
//	endpoint = http://localhost:9000
//	region = us-east-1
//	path_style = true
type S3Profile struct {
	Name       string
	AWSProfile string
	Region     string
	Endpoint   string
	PathStyle  bool
}

type ProfileRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*S3Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (*S3Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &S3Profile{
		Name:       name,
		AWSProfile: section.Key("profile").String(),
		Region:     section.Key("region").String(),
		Endpoint:   section.Key("endpoint").String(),
		PathStyle:  section.Key("path_style").MustBool(false),
	}, nil
}

// LoadS3Settings resolves the S3 profile selected by cfg. Without a profile file
// only the AWS shared-config profile name is passed through.
func LoadS3Settings(ctx context.Context, cfg S3Config) (source.S3Settings, error) {
	if cfg.ProfileFile == "" {
		return source.S3Settings{Profile: cfg.Profile}, nil
	}

	registry, err := NewProfileRegistry(cfg.ProfileFile)
	if err != nil {
		return source.S3Settings{}, fmt.Errorf("failed to load s3 profiles: %w", err)
	}

	name := cfg.Profile
	if name == "" {
		name = defaultProfile
	}
	profile, err := registry.GetProfile(ctx, name)
	if err != nil {
		return source.S3Settings{}, err
	}

	zerolog.Ctx(ctx).Debug().Str("profile", profile.Name).Str("endpoint", profile.Endpoint).Msg("using s3 profile")

	return source.S3Settings{
		Profile:   profile.AWSProfile,
		Region:    profile.Region,
		Endpoint:  profile.Endpoint,
		PathStyle: profile.PathStyle,
	}, nil
}
