package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/clinicsite-backend/internal/domain"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

// SeedContent is the baked-in fallback for the two lists the public site
// cannot render empty: the team roster and the service catalog. It is served
// read-only when the database is unreachable.
type SeedContent struct {
	professionals []*types.Professional
	services      []*types.Service
}

type seedFile struct {
	Professionals []struct {
		FullName string `yaml:"full_name"`
		Title    string `yaml:"title"`
		Bio      string `yaml:"bio"`
	} `yaml:"professionals"`
	Services []struct {
		Title   string `yaml:"title"`
		Summary string `yaml:"summary"`
		Body    string `yaml:"body"`
	} `yaml:"services"`
}

// LoadSeedContent reads the seed YAML named by SEED_CONTENT_PATH. An unset
// path disables the fallback and is not an error.
func LoadSeedContent(log *logger.Logger) (*SeedContent, error) {
	path := strings.TrimSpace(os.Getenv("SEED_CONTENT_PATH"))
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed content: %w", err)
	}
	var parsed seedFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse seed content: %w", err)
	}

	sc := &SeedContent{}
	for i, p := range parsed.Professionals {
		order := int64(i + 1)
		sc.professionals = append(sc.professionals, &types.Professional{
			FullName: p.FullName,
			Title:    p.Title,
			Bio:      p.Bio,
			Order:    &order,
		})
	}
	for i, s := range parsed.Services {
		order := int64(i + 1)
		sc.services = append(sc.services, &types.Service{
			Title:   s.Title,
			Summary: s.Summary,
			Body:    s.Body,
			Order:   &order,
		})
	}

	log.With("service", "SeedContent").Info("Seed content loaded",
		"path", path,
		"professionals", len(sc.professionals),
		"services", len(sc.services),
	)
	return sc, nil
}

func (sc *SeedContent) Professionals() []*types.Professional {
	if sc == nil {
		return nil
	}
	out := make([]*types.Professional, len(sc.professionals))
	copy(out, sc.professionals)
	return out
}

func (sc *SeedContent) Services() []*types.Service {
	if sc == nil {
		return nil
	}
	out := make([]*types.Service, len(sc.services))
	copy(out, sc.services)
	return out
}
