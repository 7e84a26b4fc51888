package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"

	announcementDomain "kingrun/internal/domain/announcement"
	challengeDomain "kingrun/internal/domain/challenge"
	eventDomain "kingrun/internal/domain/event"
	rankingDomain "kingrun/internal/domain/ranking"
	resultDomain "kingrun/internal/domain/result"
	userDomain "kingrun/internal/domain/user"
)

// StaticStore implements Store over fixed in-memory collections.
// Nothing mutates the collections after construction; every read returns copies.
type StaticStore struct {
	demoUser       userDomain.User
	events         []eventDomain.Event
	ranking        []rankingDomain.Entry
	challenges     []challengeDomain.Challenge
	userChallenges []challengeDomain.UserChallenge
	results        []resultDomain.Result
	announcements  []announcementDomain.Announcement
}

// Compile-time check that *StaticStore satisfies Store.
var _ Store = (*StaticStore)(nil)

// NewStaticStore creates a StaticStore loaded with the KING RUN season data.
// PRE: none
// POST: Returns a store whose rankings satisfy ValidateOrdering
func NewStaticStore() (*StaticStore, error) {
	s := &StaticStore{
		demoUser:       seedDemoUser,
		events:         seedEvents,
		ranking:        seedRanking,
		challenges:     seedChallenges,
		userChallenges: seedUserChallenges,
		results:        seedResults,
		announcements:  seedAnnouncements,
	}
	for _, category := range rankingDomain.Categories {
		entries, _ := s.ListRanking(context.Background(), category)
		if err := rankingDomain.ValidateOrdering(entries); err != nil {
			return nil, fmt.Errorf("ranking %s: %w", category, err)
		}
	}
	return s, nil
}

// ListEvents returns all events in calendar order.
// PRE: none
// POST: Returns a copy of the event list
func (s *StaticStore) ListEvents(ctx context.Context) ([]eventDomain.Event, error) {
	list := make([]eventDomain.Event, 0, len(s.events))
	for _, e := range s.events {
		list = append(list, copyEvent(e))
	}
	return list, nil
}

// GetEvent retrieves an event by its ID.
// PRE: none
// POST: Returns the event or ErrNotFound
func (s *StaticStore) GetEvent(ctx context.Context, id string) (eventDomain.Event, error) {
	for _, e := range s.events {
		if e.ID == id {
			return copyEvent(e), nil
		}
	}
	return eventDomain.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

// ListRanking returns the entries of one category ordered by position.
// PRE: none
// POST: Returns entries with Category == category; empty for unranked categories
func (s *StaticStore) ListRanking(ctx context.Context, category string) ([]rankingDomain.Entry, error) {
	var list []rankingDomain.Entry
	for _, e := range s.ranking {
		if e.Category == category {
			list = append(list, e)
		}
	}
	slices.SortFunc(list, func(a, b rankingDomain.Entry) int { return a.Position - b.Position })
	return list, nil
}

// ListChallenges returns all sponsor challenges.
// PRE: none
// POST: Returns a copy of the challenge list
func (s *StaticStore) ListChallenges(ctx context.Context) ([]challengeDomain.Challenge, error) {
	return slices.Clone(s.challenges), nil
}

// GetChallenge retrieves a challenge by its ID.
// PRE: none
// POST: Returns the challenge or ErrNotFound
func (s *StaticStore) GetChallenge(ctx context.Context, id string) (challengeDomain.Challenge, error) {
	for _, c := range s.challenges {
		if c.ID == id {
			return c, nil
		}
	}
	return challengeDomain.Challenge{}, fmt.Errorf("challenge %q: %w", id, ErrNotFound)
}

// GetUserChallenge retrieves a runner's progress on a challenge.
// PRE: none
// POST: Returns the progress record or ErrNotFound if the runner has not started it
func (s *StaticStore) GetUserChallenge(ctx context.Context, challengeID, userID string) (challengeDomain.UserChallenge, error) {
	for _, uc := range s.userChallenges {
		if uc.ChallengeID == challengeID && uc.UserID == userID {
			return uc, nil
		}
	}
	return challengeDomain.UserChallenge{}, fmt.Errorf("progress on challenge %q for user %q: %w", challengeID, userID, ErrNotFound)
}

// ListResultsByUser returns a runner's race history, most recent first.
// PRE: none
// POST: Returns results with UserID == userID
func (s *StaticStore) ListResultsByUser(ctx context.Context, userID string) ([]resultDomain.Result, error) {
	var list []resultDomain.Result
	for _, r := range s.results {
		if r.UserID == userID {
			list = append(list, r)
		}
	}
	slices.SortStableFunc(list, func(a, b resultDomain.Result) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	return list, nil
}

// GetResult retrieves a race result by its ID.
// PRE: none
// POST: Returns the result or ErrNotFound
func (s *StaticStore) GetResult(ctx context.Context, id string) (resultDomain.Result, error) {
	for _, r := range s.results {
		if r.ID == id {
			return r, nil
		}
	}
	return resultDomain.Result{}, fmt.Errorf("result %q: %w", id, ErrNotFound)
}

// ListAnnouncements returns the newest announcements first, at most limit (all if limit <= 0).
// PRE: none
// POST: Returns a copy of at most limit announcements
func (s *StaticStore) ListAnnouncements(ctx context.Context, limit int) ([]announcementDomain.Announcement, error) {
	list := slices.Clone(s.announcements)
	slices.SortStableFunc(list, func(a, b announcementDomain.Announcement) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// DemoUser returns the canned runner profile the demo backend signs in as.
func (s *StaticStore) DemoUser(ctx context.Context) userDomain.User {
	return s.demoUser
}

func copyEvent(e eventDomain.Event) eventDomain.Event {
	e.Distances = slices.Clone(e.Distances)
	return e
}

var seedDemoUser = userDomain.User{
	ID:              "1",
	Name:            "João Silva",
	Email:           "joao@email.com",
	Avatar:          userDomain.AvatarFor("joao"),
	TotalRaces:      12,
	TotalMedals:     5,
	AveragePosition: 45,
	CreatedAt:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
}

var seedEvents = []eventDomain.Event{
	{
		ID:                "1",
		Name:              "KING RUN São Paulo",
		Date:              "2025-02-15",
		Location:          "Parque Ibirapuera, São Paulo",
		Description:       "A maior corrida de rua de São Paulo! Venha participar dessa experiência única com milhares de corredores.",
		Distances:         []string{"5km", "10km", "21km"},
		ImageURL:          "https://images.unsplash.com/photo-1552674605-db6ffd4facb5?w=800",
		RegistrationOpen:  true,
		ParticipantsCount: 2500,
		MaxParticipants:   5000,
	},
	{
		ID:                "2",
		Name:              "KING RUN Rio Night",
		Date:              "2025-03-20",
		Location:          "Aterro do Flamengo, Rio de Janeiro",
		Description:       "Corrida noturna com vista para o **Pão de Açúcar**. Uma experiência inesquecível!",
		Distances:         []string{"5km", "10km"},
		ImageURL:          "https://images.unsplash.com/photo-1571008887538-b36bb32f4571?w=800",
		RegistrationOpen:  true,
		ParticipantsCount: 1800,
		MaxParticipants:   3000,
	},
	{
		ID:                "3",
		Name:              "KING RUN Belo Horizonte",
		Date:              "2025-04-10",
		Location:          "Praça da Liberdade, BH",
		Description:       "Corra pelas belas ruas da capital mineira nesta edição especial.",
		Distances:         []string{"5km", "10km", "21km", "42km"},
		ImageURL:          "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=800",
		RegistrationOpen:  false,
		ParticipantsCount: 0,
		MaxParticipants:   4000,
	},
}

var seedRanking = []rankingDomain.Entry{
	{Position: 1, UserID: "101", UserName: "Carlos Mendes", Points: 2450, TotalRaces: 15, Category: rankingDomain.CategoryOverall},
	{Position: 2, UserID: "102", UserName: "Ana Paula Costa", Points: 2380, TotalRaces: 14, Category: rankingDomain.CategoryOverall},
	{Position: 3, UserID: "103", UserName: "Roberto Lima", Points: 2210, TotalRaces: 13, Category: rankingDomain.CategoryOverall},
	{Position: 4, UserID: "104", UserName: "Fernanda Oliveira", Points: 2150, TotalRaces: 12, Category: rankingDomain.CategoryOverall},
	{Position: 5, UserID: "105", UserName: "Marcos Santos", Points: 2080, TotalRaces: 11, Category: rankingDomain.CategoryOverall},
	{Position: 6, UserID: "106", UserName: "Julia Ferreira", Points: 1950, TotalRaces: 10, Category: rankingDomain.CategoryOverall},
	{Position: 7, UserID: "107", UserName: "Pedro Almeida", Points: 1890, TotalRaces: 10, Category: rankingDomain.CategoryOverall},
	{Position: 8, UserID: "1", UserName: "João Silva", Points: 1750, TotalRaces: 12, Category: rankingDomain.CategoryOverall},
	{Position: 9, UserID: "109", UserName: "Camila Rodrigues", Points: 1680, TotalRaces: 9, Category: rankingDomain.CategoryOverall},
	{Position: 10, UserID: "110", UserName: "Lucas Martins", Points: 1620, TotalRaces: 8, Category: rankingDomain.CategoryOverall},
	{Position: 1, UserID: "103", UserName: "Roberto Lima", Points: 2210, TotalRaces: 13, Category: "M30-34"},
	{Position: 2, UserID: "1", UserName: "João Silva", Points: 1750, TotalRaces: 12, Category: "M30-34"},
	{Position: 3, UserID: "110", UserName: "Lucas Martins", Points: 1620, TotalRaces: 8, Category: "M30-34"},
	{Position: 1, UserID: "102", UserName: "Ana Paula Costa", Points: 2380, TotalRaces: 14, Category: "F25-29"},
	{Position: 2, UserID: "106", UserName: "Julia Ferreira", Points: 1950, TotalRaces: 10, Category: "F25-29"},
}

var seedChallenges = []challengeDomain.Challenge{
	{
		ID:            "1",
		Name:          "Desafio Nike 100km",
		Description:   "Complete 100km em corridas durante o mês",
		Sponsor:       "Nike",
		SponsorLogo:   "https://upload.wikimedia.org/wikipedia/commons/a/a6/Logo_NIKE.svg",
		StartDate:     "2025-01-01",
		EndDate:       "2025-01-31",
		Goal:          100,
		Unit:          "km",
		BadgeImageURL: "https://api.dicebear.com/7.x/shapes/svg?seed=nike100",
	},
	{
		ID:            "2",
		Name:          "Maratonista Gatorade",
		Description:   "Participe de 5 corridas em 3 meses",
		Sponsor:       "Gatorade",
		SponsorLogo:   "https://upload.wikimedia.org/wikipedia/commons/f/f3/Gatorade_logo.svg",
		StartDate:     "2025-01-01",
		EndDate:       "2025-03-31",
		Goal:          5,
		Unit:          "corridas",
		BadgeImageURL: "https://api.dicebear.com/7.x/shapes/svg?seed=gatorade5",
	},
	{
		ID:            "3",
		Name:          "Corredor Matinal",
		Description:   "Complete 20 corridas antes das 7h da manhã",
		Sponsor:       "Adidas",
		SponsorLogo:   "https://upload.wikimedia.org/wikipedia/commons/2/20/Adidas_Logo.svg",
		StartDate:     "2025-01-01",
		EndDate:       "2025-06-30",
		Goal:          20,
		Unit:          "corridas",
		BadgeImageURL: "https://api.dicebear.com/7.x/shapes/svg?seed=morning20",
	},
}

var seedUserChallenges = []challengeDomain.UserChallenge{
	{ChallengeID: "1", UserID: "1", Progress: 67},
	{ChallengeID: "2", UserID: "1", Progress: 3},
	{ChallengeID: "3", UserID: "1", Progress: 8},
}

var seedResults = []resultDomain.Result{
	{
		ID:               "1",
		EventID:          "past-1",
		EventName:        "KING RUN Curitiba 2024",
		UserID:           "1",
		Time:             "00:52:34",
		GeneralPosition:  156,
		CategoryPosition: 23,
		Category:         "M30-34",
		Distance:         "10km",
		Date:             "2024-11-10",
	},
	{
		ID:               "2",
		EventID:          "past-2",
		EventName:        "KING RUN Porto Alegre 2024",
		UserID:           "1",
		Time:             "01:48:12",
		GeneralPosition:  89,
		CategoryPosition: 12,
		Category:         "M30-34",
		Distance:         "21km",
		Date:             "2024-09-22",
	},
	{
		ID:               "3",
		EventID:          "past-3",
		EventName:        "KING RUN Floripa 2024",
		UserID:           "1",
		Time:             "00:26:45",
		GeneralPosition:  234,
		CategoryPosition: 45,
		Category:         "M30-34",
		Distance:         "5km",
		Date:             "2024-07-15",
	},
}

var seedAnnouncements = []announcementDomain.Announcement{
	{
		ID:        "1",
		Title:     "Inscrições abertas para São Paulo!",
		Content:   "Garanta já sua vaga na maior corrida do ano. **Vagas limitadas!**",
		ImageURL:  "https://images.unsplash.com/photo-1571008887538-b36bb32f4571?w=800",
		CreatedAt: "2025-01-20",
		Type:      announcementDomain.TypeEvent,
	},
	{
		ID:        "2",
		Title:     "Novo patrocinador: Nike",
		Content:   "Temos o prazer de anunciar a Nike como patrocinadora oficial das nossas corridas em 2025.",
		CreatedAt: "2025-01-18",
		Type:      announcementDomain.TypeSponsor,
	},
	{
		ID:        "3",
		Title:     "Atualização do app",
		Content:   "Nova versão disponível com melhorias de desempenho e novos recursos.",
		CreatedAt: "2025-01-15",
		Type:      announcementDomain.TypeInfo,
	},
}
