package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/platform/csvcodec"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
)

const (
	AudienceGuardians  = "guardians"
	AudienceVolunteers = "volunteers"
	AudienceAll        = "all"
)

type MailingListInput struct {
	SeasonID   string
	Audience   string
	DivisionID string
	TeamID     string
	// Role narrows the volunteer part of the list.
	Role string
}

type Recipient struct {
	Name   string
	Email  string
	Source string
}

type MailingService struct {
	seasonRepo    season.Repository
	playerRepo    player.Repository
	familyRepo    family.Repository
	volunteerRepo volunteer.Repository
	logger        *logging.Logger
}

func NewMailingService(
	seasonRepo season.Repository,
	playerRepo player.Repository,
	familyRepo family.Repository,
	volunteerRepo volunteer.Repository,
	logger *logging.Logger,
) *MailingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MailingService{
		seasonRepo:    seasonRepo,
		playerRepo:    playerRepo,
		familyRepo:    familyRepo,
		volunteerRepo: volunteerRepo,
		logger:        logger,
	}
}

// Build returns one recipient per email address, compared case-insensitively,
// ordered by email.
func (s *MailingService) Build(ctx context.Context, input MailingListInput) ([]Recipient, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MailingService.Build")
	defer span.End()

	audience := strings.ToLower(strings.TrimSpace(input.Audience))
	if audience == "" {
		audience = AudienceAll
	}
	if audience != AudienceGuardians && audience != AudienceVolunteers && audience != AudienceAll {
		return nil, fmt.Errorf("%w: unknown audience %q", ErrInvalidInput, input.Audience)
	}
	seasonID, err := requireSeason(ctx, s.seasonRepo, input.SeasonID)
	if err != nil {
		return nil, err
	}
	role := ""
	if strings.TrimSpace(input.Role) != "" {
		canonical, ok := volunteer.CanonicalRole(input.Role)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
		}
		role = canonical
	}

	list := newRecipientList()
	if audience == AudienceGuardians || audience == AudienceAll {
		players, err := s.playerRepo.List(ctx, player.Filter{
			SeasonID:   seasonID,
			DivisionID: strings.TrimSpace(input.DivisionID),
			TeamID:     strings.TrimSpace(input.TeamID),
			Status:     player.StatusActive,
		})
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		families, err := s.familyRepo.GetByIDs(ctx, playerFamilyIDs(players))
		if err != nil {
			return nil, fmt.Errorf("get families: %w", err)
		}
		for _, f := range families {
			list.add(f.Primary.Name, f.Primary.Email, AudienceGuardians)
			list.add(f.Secondary.Name, f.Secondary.Email, AudienceGuardians)
		}
	}

	if audience == AudienceVolunteers || audience == AudienceAll {
		volunteers, err := s.volunteerRepo.List(ctx, volunteer.Filter{
			SeasonID:   seasonID,
			DivisionID: strings.TrimSpace(input.DivisionID),
			TeamID:     strings.TrimSpace(input.TeamID),
			Role:       role,
		})
		if err != nil {
			return nil, fmt.Errorf("list volunteers: %w", err)
		}
		for _, v := range volunteers {
			list.add(v.Name, v.Email, AudienceVolunteers)
		}
	}

	return list.sorted(), nil
}

// AddressLine joins recipient emails for pasting into a mail client.
func AddressLine(recipients []Recipient) string {
	emails := make([]string, 0, len(recipients))
	for _, r := range recipients {
		emails = append(emails, r.Email)
	}
	return strings.Join(emails, "; ")
}

func MailingCSV(recipients []Recipient) string {
	headers := []string{"name", "email", "source"}
	rows := make([]csvcodec.Row, 0, len(recipients))
	for _, r := range recipients {
		rows = append(rows, csvcodec.RowFromValues(headers, []string{r.Name, r.Email, r.Source}))
	}
	return csvcodec.EncodeString(headers, rows)
}

type recipientList struct {
	byEmail map[string]Recipient
}

func newRecipientList() *recipientList {
	return &recipientList{byEmail: make(map[string]Recipient)}
}

func (l *recipientList) add(name, email, source string) {
	email = strings.TrimSpace(email)
	key := family.NormalizeEmail(email)
	if key == "" {
		return
	}
	if existing, ok := l.byEmail[key]; ok {
		if existing.Source != source {
			existing.Source = AudienceAll
			l.byEmail[key] = existing
		}
		return
	}
	l.byEmail[key] = Recipient{Name: strings.TrimSpace(name), Email: email, Source: source}
}

func (l *recipientList) sorted() []Recipient {
	out := make([]Recipient, 0, len(l.byEmail))
	for _, r := range l.byEmail {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Email) < strings.ToLower(out[j].Email)
	})
	return out
}
