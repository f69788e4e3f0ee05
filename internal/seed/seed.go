package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"alumnidir/internal/model"
	"alumnidir/internal/repository"
	"alumnidir/internal/service"
)

//go:embed fixture.json
var defaultFixture []byte

// Fixture is the seed document: lookup names plus sample users.
type Fixture struct {
	Programmes []string      `json:"programmes"`
	Branches   []string      `json:"branches"`
	Users      []FixtureUser `json:"users"`
}

// FixtureUser is a sample user. Programme and branch are given by name.
type FixtureUser struct {
	model.NewUser
	Programme   string             `json:"programme"`
	Branch      string             `json:"branch"`
	Internships []model.Internship `json:"internships"`
	Projects    []model.Project    `json:"projects"`
}

// Result counts what a run wrote.
type Result struct {
	Programmes   int
	Branches     int
	UsersCreated int
	UsersSkipped int
	Internships  int
	Projects     int
}

// Load reads a fixture from an http(s) URL or a file path. An empty source
// yields the built-in fixture.
func Load(ctx context.Context, source string) (*Fixture, error) {
	var (
		body []byte
		err  error
	)
	switch {
	case source == "":
		body = defaultFixture
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		body, err = fetch(ctx, source)
	default:
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var fixture Fixture
	if err := json.Unmarshal(body, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &fixture, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture source returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Seeder writes a fixture through the repositories and the user service.
type Seeder struct {
	users       service.UserService
	userRepo    repository.UserRepository
	internships repository.InternshipRepository
	projects    repository.ProjectRepository
	lookups     repository.LookupRepository
	log         *zap.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(
	users service.UserService,
	userRepo repository.UserRepository,
	internships repository.InternshipRepository,
	projects repository.ProjectRepository,
	lookups repository.LookupRepository,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		users:       users,
		userRepo:    userRepo,
		internships: internships,
		projects:    projects,
		lookups:     lookups,
		log:         log,
	}
}

// Run upserts lookups by name and inserts users not already present by
// email_id, together with their internships and projects. Running it twice
// writes no new users.
func (s *Seeder) Run(ctx context.Context, fixture *Fixture) (Result, error) {
	var res Result

	programmeIDs := make(map[string]uint)
	for _, name := range fixture.Programmes {
		p, err := s.lookups.FindOrCreateProgramme(ctx, name)
		if err != nil {
			return res, fmt.Errorf("programme %q: %w", name, err)
		}
		programmeIDs[name] = p.ProgrammeID
		res.Programmes++
	}

	branchIDs := make(map[string]uint)
	for _, name := range fixture.Branches {
		b, err := s.lookups.FindOrCreateBranch(ctx, name)
		if err != nil {
			return res, fmt.Errorf("branch %q: %w", name, err)
		}
		branchIDs[name] = b.BranchID
		res.Branches++
	}

	for _, fu := range fixture.Users {
		_, err := s.userRepo.FindByEmail(ctx, fu.EmailID)
		if err == nil {
			s.log.Info("Skipping existing user", zap.String("email_id", fu.EmailID))
			res.UsersSkipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("error checking user %s: %w", fu.EmailID, err)
		}

		input := fu.NewUser
		if id, ok := programmeIDs[fu.Programme]; ok {
			input.ProgrammeID = &id
		}
		if id, ok := branchIDs[fu.Branch]; ok {
			input.BranchID = &id
		}

		user, err := s.users.AddUser(ctx, input)
		if err != nil {
			return res, fmt.Errorf("error creating user %s: %w", fu.EmailID, err)
		}
		res.UsersCreated++

		for _, in := range fu.Internships {
			in.InternshipID = 0
			in.UserID = user.UserID
			if err := s.internships.Create(ctx, &in); err != nil {
				return res, fmt.Errorf("error creating internship for %s: %w", fu.EmailID, err)
			}
			res.Internships++
		}
		for _, p := range fu.Projects {
			p.ProjectID = 0
			p.UserID = user.UserID
			if err := s.projects.Create(ctx, &p); err != nil {
				return res, fmt.Errorf("error creating project for %s: %w", fu.EmailID, err)
			}
			res.Projects++
		}
	}

	return res, nil
}
